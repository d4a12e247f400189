package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Custom field keys understood by the certificate renderer.
const (
	FieldTitle            = "title"
	FieldVenue            = "venue"
	FieldLogoURL          = "logo_url"
	FieldOrganizerAddress = "organizer_address"
	FieldText             = "text"
	FieldPlace            = "place"
	FieldShowAffiliation  = "show_affiliation"
	FieldShowURL          = "show_url"

	signatureNamePrefix     = "signature_name_"
	signaturePositionPrefix = "signature_position_"
	signatureImagePrefix    = "signature_image_"
)

// SignatureNameKey returns the custom field key holding the name of the
// signature in slot idx (1-based).
func SignatureNameKey(idx int) string { return signatureNamePrefix + strconv.Itoa(idx) }

// SignaturePositionKey returns the key for the signatory position in slot idx.
func SignaturePositionKey(idx int) string { return signaturePositionPrefix + strconv.Itoa(idx) }

// SignatureImageKey returns the key for the signature image URL in slot idx.
func SignatureImageKey(idx int) string { return signatureImagePrefix + strconv.Itoa(idx) }

// CustomFieldsFromMap decodes raw custom field values. Strings accept any
// scalar, flags accept booleans and their string spellings. Values with an
// unusable type are reported together as FieldErrors.
func CustomFieldsFromMap(raw map[string]any) (CustomFields, error) {
	var (
		out  CustomFields
		errs FieldErrors
	)

	for key, value := range raw {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}

		if target := out.stringTarget(name); target != nil {
			str, err := asString(value)
			if err != nil {
				errs = errs.Add(name, err.Error())
				continue
			}
			*target = str
			continue
		}

		switch name {
		case FieldShowAffiliation, FieldShowURL:
			flag, err := asBool(value)
			if err != nil {
				errs = errs.Add(name, err.Error())
				continue
			}
			if name == FieldShowAffiliation {
				out.ShowAffiliation = flag
			} else {
				out.ShowURL = flag
			}
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[name] = value
		}
	}

	if len(errs) > 0 {
		return CustomFields{}, errs
	}
	return out, nil
}

// Map encodes the custom fields back into their raw key form. Empty strings
// and false flags are omitted.
func (c CustomFields) Map() map[string]any {
	out := make(map[string]any, len(c.Extra)+8)
	for key, value := range c.Extra {
		out[key] = value
	}

	put := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			out[key] = value
		}
	}
	put(FieldTitle, c.Title)
	put(FieldVenue, c.Venue)
	put(FieldLogoURL, c.LogoURL)
	put(FieldOrganizerAddress, c.OrganizerAddress)
	put(FieldText, c.Text)
	put(FieldPlace, c.Place)
	for i, sig := range c.SignatureSlots {
		put(SignatureNameKey(i+1), sig.Name)
		put(SignaturePositionKey(i+1), sig.Position)
		put(SignatureImageKey(i+1), sig.ImageURL)
	}
	if c.ShowAffiliation {
		out[FieldShowAffiliation] = true
	}
	if c.ShowURL {
		out[FieldShowURL] = true
	}
	return out
}

// Overrides encodes c for layering over preset values. It returns nil when c
// is zero. Otherwise both flags are always present, so a document that sets
// any field also decides the flags, false included.
func (c CustomFields) Overrides() map[string]any {
	if c.IsZero() {
		return nil
	}
	out := c.Map()
	out[FieldShowAffiliation] = c.ShowAffiliation
	out[FieldShowURL] = c.ShowURL
	return out
}

// IsZero reports whether no field, flag or extra value is set.
func (c CustomFields) IsZero() bool {
	if c.ShowAffiliation || c.ShowURL || len(c.Extra) > 0 {
		return false
	}
	for _, value := range []string{c.Title, c.Venue, c.LogoURL, c.OrganizerAddress, c.Text, c.Place} {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	for _, sig := range c.SignatureSlots {
		if sig.HasContent() {
			return false
		}
	}
	return true
}

// MergeCustomFields layers the override maps on top of base. Later maps win;
// nil and blank string values do not clear an earlier value.
func MergeCustomFields(base map[string]any, overrides ...map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for key, value := range base {
		out[key] = value
	}
	for _, layer := range overrides {
		for key, value := range layer {
			if value == nil {
				continue
			}
			if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
				continue
			}
			out[key] = value
		}
	}
	return out
}

// Keys returns the known custom field keys in a stable order.
func Keys() []string {
	keys := []string{
		FieldTitle, FieldVenue, FieldLogoURL, FieldOrganizerAddress,
		FieldText, FieldPlace, FieldShowAffiliation, FieldShowURL,
	}
	for i := 1; i <= MaxSignatures; i++ {
		keys = append(keys, SignatureNameKey(i), SignaturePositionKey(i), SignatureImageKey(i))
	}
	return keys
}

func (c *CustomFields) stringTarget(key string) *string {
	switch key {
	case FieldTitle:
		return &c.Title
	case FieldVenue:
		return &c.Venue
	case FieldLogoURL:
		return &c.LogoURL
	case FieldOrganizerAddress:
		return &c.OrganizerAddress
	case FieldText:
		return &c.Text
	case FieldPlace:
		return &c.Place
	}

	for _, prefix := range []string{signatureNamePrefix, signaturePositionPrefix, signatureImagePrefix} {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
		if err != nil || idx < 1 || idx > MaxSignatures {
			return nil
		}
		slot := &c.SignatureSlots[idx-1]
		switch prefix {
		case signatureNamePrefix:
			return &slot.Name
		case signaturePositionPrefix:
			return &slot.Position
		default:
			return &slot.ImageURL
		}
	}
	return nil
}

func asString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("expected text, got %T", value)
	}
}

func asBool(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false, nil
		}
		parsed, err := strconv.ParseBool(trimmed)
		if err != nil {
			return false, fmt.Errorf("expected a boolean, got %q", v)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("expected a boolean, got %T", value)
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
