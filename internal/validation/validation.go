// Package validation holds the shared validator and its custom rules.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"sk-barangay-service/internal/error/code"
)

const (
	// DateLayout is the storage format of calendar dates
	DateLayout = "2006-01-02"
	// TimeLayout is the storage format of clock times
	TimeLayout = "15:04"
)

var (
	contactRegex = regexp.MustCompile(`^[0-9+\-\s()]+$`)

	shared     *validator.Validate
	sharedOnce sync.Once
)

// Validator returns the process-wide validator with custom rules registered
func Validator() *validator.Validate {
	sharedOnce.Do(func() {
		shared = validator.New()
		register(shared)
	})
	return shared
}

// RegisterGin adds the custom rules to gin's binding validator
func RegisterGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonName)
	v.RegisterValidation("contact_no", validateContactNo)
	v.RegisterValidation("ymd", validateDate)
	v.RegisterValidation("hhmm", validateTime)
}

// jsonName reports fields by their json or form key
func jsonName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// validateContactNo allows digits, spaces, plus, dash and parentheses up to 20 chars
func validateContactNo(fl validator.FieldLevel) bool {
	return IsContactNo(fl.Field().String())
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func validateTime(fl validator.FieldLevel) bool {
	return IsTime(fl.Field().String())
}

// IsContactNo reports whether s is an acceptable contact number
func IsContactNo(s string) bool {
	return len(s) <= 20 && contactRegex.MatchString(s)
}

// IsEmail reports whether s is an email address of at most 150 chars
func IsEmail(s string) bool {
	return len(s) <= 150 && Validator().Var(s, "required,email") == nil
}

// IsHexColor reports whether s is a #rgb or #rrggbb colour
func IsHexColor(s string) bool {
	return Validator().Var(s, "required,hexcolor") == nil
}

// IsTime accepts HH:MM and HH:MM:SS
func IsTime(s string) bool {
	if _, err := time.Parse(TimeLayout, s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date, tolerating a trailing time part
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// Errors collects field messages and renders them as one validation error
type Errors []string

// Add appends msg
func (e *Errors) Add(msg string) {
	*e = append(*e, msg)
}

// Check appends msg when cond is false
func (e *Errors) Check(cond bool, msg string) {
	if !cond {
		e.Add(msg)
	}
}

// Err returns nil or a validation error joining all messages with ", "
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return code.New(code.ErrValidation, strings.Join(e, ", "))
}

// Length counts runes of the trimmed string
func Length(s string) int {
	return len([]rune(strings.TrimSpace(s)))
}

// Blank reports whether s is empty after trimming
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// OneOf reports whether s is one of allowed
func OneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
