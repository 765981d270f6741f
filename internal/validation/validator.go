package validation

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "golang.org/x/image/webp"
)

// DefaultMaxImageBytes is the decoded size ceiling for embedded images.
const DefaultMaxImageBytes = 2 << 20

// MaxImageSide bounds both dimensions of an embedded raster image, so that a
// small, highly compressed file cannot expand into a huge canvas on decode.
const MaxImageSide = 4096

// MaxImagePixels is the pixel budget of an embedded raster image.
const MaxImagePixels = MaxImageSide * MaxImageSide

// ErrImageDimensions reports an image whose declared canvas exceeds MaxImagePixels.
var ErrImageDimensions = errors.New("image dimensions exceed the pixel budget")

// Tags registered on top of the validator builtins.
const (
	TagTenDigit     = "tendigit"
	TagEmailShape   = "emailshape"
	TagBoundedArray = "boundedarray"
	TagDataImage    = "dataimage"
)

var (
	tenDigitPattern   = regexp.MustCompile(`^[0-9]{10}$`)
	emailShapePattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	dataImagePattern  = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif|webp|svg\+xml);base64,`)
)

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate      *validator.Validate
	maxImageBytes int
}

// Violations holds the result of a failed validation pass, keyed by field path.
type Violations struct {
	// Limits are bounded-collection violations; they are reported on their own.
	Limits map[string]string
	Fields map[string]string
}

func (v *Violations) Error() string {
	parts := make([]string, 0, len(v.Limits)+len(v.Fields))
	for _, m := range v.Limits {
		parts = append(parts, m)
	}
	for _, m := range v.Fields {
		parts = append(parts, m)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// New builds a Validator with the custom tags registered.
func New(maxImageBytes int) *Validator {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	v := &Validator{
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		maxImageBytes: maxImageBytes,
	}

	// Report fields by their wire names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation tag %q: %v", tag, err))
		}
	}
	mustRegister(TagTenDigit, validateTenDigit)
	mustRegister(TagEmailShape, validateEmailShape)
	mustRegister(TagBoundedArray, validateBoundedArray)
	mustRegister(TagDataImage, v.validateDataImage)
	return v
}

// MaxImageBytes reports the configured embedded image ceiling.
func (v *Validator) MaxImageBytes() int { return v.maxImageBytes }

// Struct validates s and returns *Violations when any rule fails.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &Violations{Limits: map[string]string{}, Fields: map[string]string{}}
	for _, fe := range verrs {
		field := fieldPath(fe)
		if fe.Tag() == TagBoundedArray {
			out.Limits[field] = v.message(field, fe)
			continue
		}
		out.Fields[field] = v.message(field, fe)
	}
	return out
}

// TenDigit reports whether s is exactly ten ASCII digits.
func TenDigit(s string) bool { return tenDigitPattern.MatchString(s) }

// EmailShape reports whether s looks like local@domain.tld.
func EmailShape(s string) bool { return emailShapePattern.MatchString(s) }

// DataImage checks that s is a base64 image data URI no larger than maxBytes once
// decoded. Raster formats whose header can be read must also fit MaxImagePixels.
func DataImage(s string, maxBytes int) error {
	loc := dataImagePattern.FindStringIndex(s)
	if loc == nil {
		return errors.New("not an embedded image data URI")
	}
	payload := s[loc[1]:]
	if base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return fmt.Errorf("image exceeds %d bytes", maxBytes)
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("invalid base64 payload: %w", err)
	}
	if len(decoded) > maxBytes {
		return fmt.Errorf("image exceeds %d bytes", maxBytes)
	}
	return CheckDimensions(decoded)
}

// CheckDimensions reads only the image header of data and fails with
// ErrImageDimensions when the canvas is over MaxImagePixels. Data whose format
// is not recognised is left to the caller.
func CheckDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return fmt.Errorf("%w: %dx%d", ErrImageDimensions, cfg.Width, cfg.Height)
	}
	return nil
}

func validateTenDigit(fl validator.FieldLevel) bool {
	return TenDigit(fl.Field().String())
}

func validateEmailShape(fl validator.FieldLevel) bool {
	return EmailShape(fl.Field().String())
}

// validateBoundedArray accepts slices, arrays and maps with at most param elements.
func validateBoundedArray(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("boundedarray: bad param %q", fl.Param()))
	}
	field := fl.Field()
	switch field.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return field.Len() <= limit
	}
	return false
}

func (v *Validator) validateDataImage(fl validator.FieldLevel) bool {
	return DataImage(fl.Field().String(), v.maxImageBytes) == nil
}

// fieldPath drops the struct name from the namespace: "Professional.productsAndServices[0].title"
// becomes "productsAndServices[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func (v *Validator) message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case TagTenDigit:
		return fmt.Sprintf("%s must be 10 digits", field)
	case TagEmailShape:
		return fmt.Sprintf("%s must be a valid email", field)
	case TagBoundedArray:
		return fmt.Sprintf("%s cannot have more than %s entries", field, fe.Param())
	case TagDataImage:
		return fmt.Sprintf("%s must be an embedded image no larger than %s and %dx%d pixels",
			field, humanBytes(v.maxImageBytes), MaxImageSide, MaxImageSide)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	}
	return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
