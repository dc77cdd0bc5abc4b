package ingest

import (
	"fmt"
	"strings"
)

// roomFeature is one room with its descriptive tags from the cleaned
// feature extraction output.
type roomFeature struct {
	Room    string   `json:"room"`
	TagList []string `json:"tag_list"`
}

// locationKeys builds composite keys so same-named districts and streets
// in different cities stay distinct nodes.
func locationKeys(city, district, street string) (districtKey, streetKey string) {
	districtKey = city + "|" + district
	streetKey = city + "|" + district + "|" + street
	return districtKey, streetKey
}

// buildParams converts a cleaned property document into the parameter map
// for the import statement. Numeric fields parse fallibly; malformed
// values become null and count against discards. A missing property_id
// fails the document.
func buildParams(doc map[string]any, discards *DiscardCounter) (map[string]any, error) {
	propertyID := strings.TrimSpace(stringField(doc, "property_id"))
	if propertyID == "" {
		return nil, fmt.Errorf("missing property_id")
	}

	city := strings.TrimSpace(stringField(doc, "city"))
	district := strings.TrimSpace(stringField(doc, "district"))
	street := strings.TrimSpace(stringField(doc, "street"))
	districtKey, streetKey := locationKeys(city, district, street)

	params := map[string]any{
		"property_id":         propertyID,
		"title":               doc["title"],
		"total_price":         optParam(ParseOptionalFloat(doc["total_price"], discards)),
		"property_type":       doc["property_type"],
		"property_age":        optParam(ParseOptionalInt(doc["property_age"], discards)),
		"gross_area":          optParam(ParseOptionalFloat(doc["gross_area"], discards)),
		"interior_area":       optParam(ParseOptionalFloat(doc["interior_area"], discards)),
		"public_area_ratio":   optParam(ParseOptionalFloat(doc["public_area_ratio"], discards)),
		"num_bedroom":         optParam(ParseOptionalInt(doc["num_bedroom"], discards)),
		"num_bathroom":        optParam(ParseOptionalInt(doc["num_bathroom"], discards)),
		"num_living_room":     optParam(ParseOptionalInt(doc["num_living_room"], discards)),
		"floor":               optParam(ParseOptionalInt(doc["floor"], discards)),
		"total_floors":        optParam(ParseOptionalInt(doc["total_floors"], discards)),
		"land_ownership_area": optParam(ParseOptionalFloat(doc["land_ownership_area"], discards)),
		"property_usage":      doc["property_usage"],
		"orientation":         doc["orientation"],
		"original_url":        doc["original_url"],
		"description":         doc["description"],
		"raw_description":     doc["raw_description"],
		"city":                city,
		"district":            district,
		"street":              street,
		"district_key":        districtKey,
		"street_key":          streetKey,
	}
	params["extracted_feature_list"] = normalizeFeatureList(doc["extracted_feature_list"])
	params["picture_list"] = normalizePictureList(doc["picture_list"])
	return params, nil
}

func stringField(doc map[string]any, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

// optParam turns a typed optional into an untyped nil or value so the
// driver binds a proper Cypher null.
func optParam[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// normalizeFeatureList coerces the raw extracted_feature_list into a
// uniform shape, dropping entries without a room name and blank tags.
func normalizeFeatureList(raw any) []map[string]any {
	items, ok := raw.([]any)
	if !ok {
		return []map[string]any{}
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		room := strings.TrimSpace(stringField(entry, "room"))
		if room == "" {
			continue
		}

		tags := []string{}
		if rawTags, ok := entry["tag_list"].([]any); ok {
			for _, t := range rawTags {
				if s, ok := t.(string); ok {
					if trimmed := strings.TrimSpace(s); trimmed != "" {
						tags = append(tags, trimmed)
					}
				}
			}
		}
		out = append(out, map[string]any{"room": room, "tag_list": tags})
	}
	return out
}

// normalizePictureList coerces the raw picture_list into trimmed,
// non-empty URL strings.
func normalizePictureList(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
