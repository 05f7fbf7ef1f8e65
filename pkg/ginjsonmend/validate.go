package ginjsonmend

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ValidateResponse reports the outcome of a mapping-document check.
type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidationError locates one shape violation inside a document.
type ValidationError struct {
	Loc     []string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e.Loc) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Loc, "."), e.Message)
}

// fieldTypes are the value types a mapping field may declare.
var fieldTypes = map[string]bool{
	"string":   true,
	"number":   true,
	"boolean":  true,
	"date":     true,
	"currency": true,
}

var mappingKeys = map[string]bool{"name": true, "fields": true}

var fieldKeys = map[string]bool{"name": true, "type": true, "description": true}

// ValidateMapping checks the shape of a generated field-mapping
// document: a top-level object with a string "name" and a "fields"
// array whose entries each carry a string "name" and a known "type".
// Missing required keys and wrong value types are errors; unknown keys
// are warnings.
func ValidateMapping(doc any) ValidateResponse {
	var errs []ValidationError
	var warns []ValidationError

	root, ok := doc.(*orderedmap.OrderedMap[string, any])
	if !ok {
		errs = append(errs, ValidationError{Message: "document must be an object"})
		return buildResponse(errs, warns)
	}

	if name, present := root.Get("name"); !present {
		errs = append(errs, ValidationError{Loc: []string{"name"}, Message: "required key missing"})
	} else if _, isString := name.(string); !isString {
		errs = append(errs, ValidationError{Loc: []string{"name"}, Message: "must be a string"})
	}

	fields, present := root.Get("fields")
	if !present {
		errs = append(errs, ValidationError{Loc: []string{"fields"}, Message: "required key missing"})
	} else if arr, isArray := fields.([]any); !isArray {
		errs = append(errs, ValidationError{Loc: []string{"fields"}, Message: "must be an array"})
	} else {
		for i, entry := range arr {
			loc := fmt.Sprintf("fields[%d]", i)
			fieldErrs, fieldWarns := validateField(loc, entry)
			errs = append(errs, fieldErrs...)
			warns = append(warns, fieldWarns...)
		}
	}

	for pair := root.Oldest(); pair != nil; pair = pair.Next() {
		if !mappingKeys[pair.Key] {
			warns = append(warns, ValidationError{Loc: []string{pair.Key}, Message: "unknown key"})
		}
	}

	return buildResponse(errs, warns)
}

func validateField(loc string, entry any) (errs, warns []ValidationError) {
	obj, ok := entry.(*orderedmap.OrderedMap[string, any])
	if !ok {
		return []ValidationError{{Loc: []string{loc}, Message: "must be an object"}}, nil
	}

	if name, present := obj.Get("name"); !present {
		errs = append(errs, ValidationError{Loc: []string{loc, "name"}, Message: "required key missing"})
	} else if _, isString := name.(string); !isString {
		errs = append(errs, ValidationError{Loc: []string{loc, "name"}, Message: "must be a string"})
	}

	if typ, present := obj.Get("type"); !present {
		errs = append(errs, ValidationError{Loc: []string{loc, "type"}, Message: "required key missing"})
	} else if str, isString := typ.(string); !isString {
		errs = append(errs, ValidationError{Loc: []string{loc, "type"}, Message: "must be a string"})
	} else if !fieldTypes[str] {
		errs = append(errs, ValidationError{
			Loc:     []string{loc, "type"},
			Message: fmt.Sprintf("unknown type %q", str),
		})
	}

	if desc, present := obj.Get("description"); present {
		if _, isString := desc.(string); !isString {
			errs = append(errs, ValidationError{Loc: []string{loc, "description"}, Message: "must be a string"})
		}
	}

	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if !fieldKeys[pair.Key] {
			warns = append(warns, ValidationError{Loc: []string{loc, pair.Key}, Message: "unknown key"})
		}
	}
	return errs, warns
}

func buildResponse(errs, warns []ValidationError) ValidateResponse {
	resp := ValidateResponse{Valid: len(errs) == 0}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, e.Error())
	}
	for _, w := range warns {
		resp.Warnings = append(resp.Warnings, w.Error())
	}
	return resp
}
