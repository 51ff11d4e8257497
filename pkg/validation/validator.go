package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxIdentifierLength = 64

	// Protein identifiers are gene symbols or database accessions
	// (BRCA1, P38398, 9606.ENSP00000418960, BIOGRID:107140).
	identifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:\-]*$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	mustRegister("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister("protein_id", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// InteractionRequest is one side-by-side pair of an interaction list.
// Endpoints are only required to be present: the builder is tolerant of
// whatever identifiers the upstream relation supplies.
type InteractionRequest struct {
	ProteinA string `json:"protein_a" validate:"required,notblank"`
	ProteinB string `json:"protein_b" validate:"required,notblank"`
}

// AnalyzeRequest is a request to fetch and analyze the network of one protein.
type AnalyzeRequest struct {
	ProteinID string `json:"protein_id" validate:"required,notblank,max=64,protein_id"`
	Source    string `json:"source" validate:"required,notblank"`
	Layout    string `json:"layout" validate:"omitempty,oneof=spring circular shell"`
	Metric    string `json:"metric" validate:"omitempty"`
}

// ValidateInteraction validates a single interaction pair
func ValidateInteraction(req *InteractionRequest) error {
	if req == nil {
		return errors.New("interaction cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateAnalyzeRequest validates an analysis request
func ValidateAnalyzeRequest(req *AnalyzeRequest) error {
	if req == nil {
		return errors.New("analyze request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateProteinID validates a bare protein identifier
func ValidateProteinID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("protein ID cannot be empty")
	}
	if len(id) > MaxIdentifierLength {
		return fmt.Errorf("protein ID '%s' exceeds maximum length of %d characters", id, MaxIdentifierLength)
	}
	if !identifierPattern.MatchString(id) {
		return fmt.Errorf("protein ID '%s' contains invalid characters", id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required", "notblank":
			return fmt.Errorf("%s: field is required", field)
		case "max":
			return fmt.Errorf("%s: must not exceed %s characters", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "protein_id":
			return fmt.Errorf("%s: '%v' is not a valid protein identifier", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
