package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Item is a single product record as listed by the catalog APIs.
// Only ID, Title, Description, Category and Price are inspected by the
// browsing engine; every other field is carried in Attributes untouched.
type Item struct {
	ID          string
	Title       string
	Description string
	Category    string
	Price       float64
	Attributes  map[string]json.RawMessage
}

// inspected lists the JSON keys mapped to typed fields.
var inspected = map[string]struct{}{
	"id":          {},
	"title":       {},
	"description": {},
	"category":    {},
	"price":       {},
}

// UnmarshalJSON decodes an item whose id may be a JSON string or number.
// Unknown keys are kept in Attributes.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Item{}
	if v, ok := raw["id"]; ok {
		id, err := decodeID(v)
		if err != nil {
			return err
		}
		out.ID = id
	}
	if err := decodeOptional(raw, "title", &out.Title); err != nil {
		return err
	}
	if err := decodeOptional(raw, "description", &out.Description); err != nil {
		return err
	}
	if err := decodeOptional(raw, "category", &out.Category); err != nil {
		return err
	}
	if v, ok := raw["price"]; ok {
		if err := json.Unmarshal(v, &out.Price); err != nil {
			return fmt.Errorf("decode price: %w", err)
		}
	} else {
		out.Price = math.NaN() // missing price fails Validate
	}

	for k, v := range raw {
		if _, ok := inspected[k]; ok {
			continue
		}
		if out.Attributes == nil {
			out.Attributes = make(map[string]json.RawMessage)
		}
		out.Attributes[k] = v
	}

	*i = out
	return nil
}

// MarshalJSON writes the item back in the API shape, attributes included.
func (i Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Attributes)+5)
	for k, v := range i.Attributes {
		out[k] = v
	}
	out["id"] = i.ID
	out["title"] = i.Title
	out["description"] = i.Description
	out["category"] = i.Category
	out["price"] = i.Price
	return json.Marshal(out)
}

func decodeID(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", nil
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", fmt.Errorf("decode id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", fmt.Errorf("decode id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", fmt.Errorf("decode id: %w", err)
	}
	return n.String(), nil
}

func decodeOptional(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
