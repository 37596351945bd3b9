package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validation helper functions
func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, lo, hi float64) []ValidationError {
	if value < lo || value > hi {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", lo, hi),
		}}
	}
	return nil
}

func validateOneOf(field, value string, allowed ...string) []ValidationError {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return []ValidationError{{
		Field:   field,
		Message: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")),
	}}
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top-level section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	var order []string
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		if _, seen := categories[category]; !seen {
			order = append(order, category)
		}
		categories[category] = append(categories[category], err)
	}

	for _, category := range order {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *RenderConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Scene.Validate()...)
	errors = append(errors, c.Render.Validate()...)
	errors = append(errors, c.Output.Validate()...)
	return errors
}

func (s *Scene) Validate() []ValidationError {
	var errors []ValidationError

	if s.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "scene.path",
			Message: "scene path is required",
		})
	}

	for i, m := range s.Meshes {
		prefix := fmt.Sprintf("scene.meshes.%d", i)
		if m.Path == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".path",
				Message: "mesh path is required",
			})
		}
		errors = append(errors, validateNonNegative(prefix+".scale", m.Scale)...)
		errors = append(errors, m.Surface.Validate(prefix+".surface")...)
	}

	return errors
}

func (s *Surface) Validate(prefix string) []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative(prefix+".texture", float64(s.Texture))...)
	errors = append(errors, validateInRange(prefix+".kdiff", s.KDiff, 0, 1)...)
	errors = append(errors, validateInRange(prefix+".kspec", s.KSpec, 0, 1)...)
	errors = append(errors, validateInRange(prefix+".ktran", s.KTran, 0, 1)...)
	if s.KTran > 0 {
		errors = append(errors, validatePositive(prefix+".n", s.N)...)
	}
	for i, c := range s.Color {
		errors = append(errors, validateInRange(fmt.Sprintf("%s.color.%d", prefix, i), c, 0, 1)...)
	}
	return errors
}

func (r *Render) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateNonNegative("render.threshold", float64(r.Threshold))...)
	errors = append(errors, validateNonNegative("render.max_depth", float64(r.MaxDepth))...)
	errors = append(errors, validateOneOf("render.supersample", r.Supersample, "none", "2x2", "3x3")...)
	errors = append(errors, validateOneOf("render.order", r.Order, "top_down", "bottom_up")...)
	errors = append(errors, validateNonNegative("render.width", float64(r.Width))...)
	errors = append(errors, validateNonNegative("render.height", float64(r.Height))...)
	errors = append(errors, validateNonNegative("render.workers", float64(r.Workers))...)
	errors = append(errors, validateNonNegative("render.max_primitives", float64(r.MaxPrimitives))...)
	errors = append(errors, validateNonNegative("render.max_octree_depth", float64(r.MaxOctreeDepth))...)
	errors = append(errors, validateInRange("render.cutoff", r.Cutoff, 0, 1)...)

	return errors
}

func (o *Output) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateOneOf("output.format", o.Format, "bmp", "png", "raw", "raster")...)
	switch o.Channels {
	case 0, 3:
	case 4:
		if o.Format == "bmp" || o.Format == "png" {
			errors = append(errors, ValidationError{
				Field:   "output.channels",
				Message: "4 channels only apply to raw and raster output",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "output.channels",
			Message: "must be 3 or 4",
		})
	}
	if o.Format != "" && o.Format != "raw" && o.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Message: "a path is required for file output",
		})
	}

	return errors
}
