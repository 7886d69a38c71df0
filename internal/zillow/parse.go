package zillow

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/nao1215/homeheat/internal/model"
)

const (
	searchResultsPath = "response/results/result"
	compsPath         = "response/properties/comparables/comp"
)

// parseSearchResults extracts records from a GetSearchResults body.
func parseSearchResults(body []byte, logger *slog.Logger) []model.Record {
	return parseCandidates(body, searchResultsPath, logger)
}

// parseComps extracts records from a GetComps body.
func parseComps(body []byte, logger *slog.Logger) []model.Record {
	return parseCandidates(body, compsPath, logger)
}

// parseCandidates reads the envelope, checks message/code and converts every
// candidate element under path. Malformed envelopes yield nil.
func parseCandidates(body []byte, path string, logger *slog.Logger) []model.Record {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		logger.Debug("malformed response", "reason", "xml syntax error", "error", err)
		return nil
	}

	root := doc.Root()
	if root == nil {
		logger.Debug("malformed response", "reason", "empty document")
		return nil
	}

	code, ok := messageCode(root)
	if !ok {
		logger.Debug("malformed response", "reason", "missing or unparseable message code")
		return nil
	}
	if code != 0 {
		logger.Debug("response rejected", "code", code, "text", childText(root, "message/text"))
		return nil
	}

	elements := root.FindElements(path)
	records := make([]model.Record, 0, len(elements))
	for _, el := range elements {
		r, ok := parseCandidate(el)
		if !ok {
			logger.Debug("candidate dropped", "zpid", childText(el, "zpid"))
			continue
		}
		records = append(records, r)
	}

	return records
}

// messageCode returns the integer under message/code.
func messageCode(root *etree.Element) (int, bool) {
	text, ok := field(root, "message/code")
	if !ok {
		return 0, false
	}
	code, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return code, true
}

// parseCandidate converts one result or comp element. The first missing or
// unparseable field drops the candidate.
func parseCandidate(el *etree.Element) (model.Record, bool) {
	zpid, ok := field(el, "zpid")
	if !ok {
		return model.Record{}, false
	}
	lat, ok := floatField(el, "address/latitude")
	if !ok {
		return model.Record{}, false
	}
	lon, ok := floatField(el, "address/longitude")
	if !ok {
		return model.Record{}, false
	}
	value, ok := floatField(el, "localRealEstate/region/zindexValue")
	if !ok {
		return model.Record{}, false
	}

	return model.Record{
		ID:        zpid,
		Latitude:  lat,
		Longitude: lon,
		Value:     value,
	}, true
}

// field returns the trimmed text of the element at path, if present and non-empty.
func field(el *etree.Element, path string) (string, bool) {
	child := el.FindElement(path)
	if child == nil {
		return "", false
	}
	text := strings.TrimSpace(child.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// floatField parses the element at path as a finite number, ignoring
// thousands separators.
func floatField(el *etree.Element, path string) (float64, bool) {
	text, ok := field(el, path)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func childText(el *etree.Element, path string) string {
	text, _ := field(el, path)
	return text
}
