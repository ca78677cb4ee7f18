package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Action is the outcome tag of an elicitation exchange.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionCancel  Action = "cancel"
)

// Field types allowed in elicitation schemas.
const (
	FieldString  = "string"
	FieldNumber  = "number"
	FieldInteger = "integer"
	FieldBoolean = "boolean"
)

// Field is one entry in an elicitation schema. Field order within a
// Schema is meaningful and preserved on the wire.
type Field struct {
	Name        string
	Type        string
	Description string
	Enum        []string
	Format      string
	Minimum     *float64
	Maximum     *float64
	Default     any
}

// Schema describes the reply an elicitation request asks for.
type Schema struct {
	Fields   []Field
	Required []string
}

// ElicitationRequest is one schema-shaped question for a human.
type ElicitationRequest struct {
	Message   string `json:"message"`
	Schema    Schema `json:"requestedSchema"`
	TimeoutMs int    `json:"timeoutMs"`
}

// Outcome is the normalized result of one elicitation exchange.
// Content is populated only when Action is accept.
type Outcome struct {
	Action  Action         `json:"action"`
	Content map[string]any `json:"content,omitempty"`
}

// Validate checks that every required name exists among the fields and
// that every field uses a supported primitive type.
func (s Schema) Validate() error {
	names := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		switch f.Type {
		case FieldString, FieldNumber, FieldInteger, FieldBoolean:
		default:
			return fmt.Errorf("field %q has unsupported type %q", f.Name, f.Type)
		}
		names[f.Name] = true
	}
	for _, r := range s.Required {
		if !names[r] {
			return fmt.Errorf("required field %q not present in schema", r)
		}
	}
	return nil
}

// FieldType returns the declared type of a named field, or "" when the
// schema does not contain it.
func (s Schema) FieldType(name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return ""
}

// fieldProps is the JSON property object for one schema field.
type fieldProps struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Format      string   `json:"format,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

func (f Field) props() fieldProps {
	return fieldProps{
		Type:        f.Type,
		Description: f.Description,
		Enum:        f.Enum,
		Format:      f.Format,
		Minimum:     f.Minimum,
		Maximum:     f.Maximum,
		Default:     f.Default,
	}
}

// orderedProperties marshals schema fields as a JSON object whose keys
// keep the declared field order. Standard map marshaling would sort
// keys alphabetically and drop the ordering contract.
type orderedProperties []Field

func (p orderedProperties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		prop, err := json.Marshal(f.props())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(prop)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON emits the wire form of a schema:
// {"type":"object","properties":{...},"required":[...]}.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"object","properties":`)
	props, err := json.Marshal(orderedProperties(s.Fields))
	if err != nil {
		return nil, err
	}
	buf.Write(props)
	if len(s.Required) > 0 {
		req, err := json.Marshal(s.Required)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"required":`)
		buf.Write(req)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PropertyMap returns the schema in the generic map shape transport
// layers accept. Property order is still preserved because the nested
// value carries its own marshaler.
func (s Schema) PropertyMap() map[string]any {
	m := map[string]any{
		"type":       "object",
		"properties": orderedProperties(s.Fields),
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	return m
}

// UnmarshalJSON restores a schema from its wire form, keeping the
// property order found in the document.
func (s *Schema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("schema: expected object, got %v", tok)
	}
	var out Schema
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		switch key {
		case "properties":
			fields, err := decodeProperties(dec)
			if err != nil {
				return err
			}
			out.Fields = fields
		case "required":
			if err := dec.Decode(&out.Required); err != nil {
				return err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
	}
	*s = out
	return nil
}

func decodeProperties(dec *json.Decoder) ([]Field, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("schema: properties must be an object")
	}
	var fields []Field
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := nameTok.(string)
		var p fieldProps
		if err := dec.Decode(&p); err != nil {
			return nil, err
		}
		fields = append(fields, Field{
			Name:        name,
			Type:        p.Type,
			Description: p.Description,
			Enum:        p.Enum,
			Format:      p.Format,
			Minimum:     p.Minimum,
			Maximum:     p.Maximum,
			Default:     p.Default,
		})
	}
	// consume the closing brace so the caller's token stream stays aligned
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}
