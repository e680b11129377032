package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultPlaceholderImage is submitted when a new product has no images;
// the API requires at least one.
const DefaultPlaceholderImage = "https://placehold.co/600x400?text=No+Image"

// ProductForm holds the raw string values of the create/edit form exactly as
// the user typed them.
type ProductForm struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Price       string `json:"price" form:"price" validate:"required,decimal"`
	Description string `json:"description" form:"description"`
	CategoryID  string `json:"categoryId" form:"categoryId" validate:"required,number"`
	Images      string `json:"images" form:"images"` // comma-separated URLs
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormError is returned when a submitted form is missing required values or
// has values that cannot be converted.
type FormError struct {
	Fields []FieldError
}

func (e *FormError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Field returns the message for a single field, or "" if it is valid.
func (e *FormError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Anything decimal.NewFromString reads is a price: ".5", "10." and "1e2"
	// included.
	if err := v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

var formFieldNames = map[string]string{
	"Title":      "title",
	"Price":      "price",
	"CategoryID": "categoryId",
}

// Parse validates the form and converts it to an API payload.
// Values are trimmed first; images are split on commas with empty entries
// dropped. Parse does not substitute a placeholder image; see ParseForCreate.
func (f ProductForm) Parse() (catalog.ProductInput, error) {
	f = f.trimmed()

	if err := formValidator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return catalog.ProductInput{}, fmt.Errorf("validate form: %w", err)
		}
		return catalog.ProductInput{}, toFormError(verrs)
	}

	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return catalog.ProductInput{}, &FormError{Fields: []FieldError{{Field: "price", Message: "must be a number"}}}
	}

	categoryID, err := strconv.Atoi(f.CategoryID)
	if err != nil {
		return catalog.ProductInput{}, &FormError{Fields: []FieldError{{Field: "categoryId", Message: "must be a whole number"}}}
	}

	return catalog.ProductInput{
		Title:       f.Title,
		Price:       price,
		Description: f.Description,
		CategoryID:  categoryID,
		Images:      SplitImages(f.Images),
	}, nil
}

// ParseForCreate is Parse plus placeholder substitution: when the user gave
// no image URLs, images becomes a single placeholder so the API accepts it.
func (f ProductForm) ParseForCreate(placeholder string) (catalog.ProductInput, error) {
	input, err := f.Parse()
	if err != nil {
		return input, err
	}
	if len(input.Images) == 0 {
		if placeholder == "" {
			placeholder = DefaultPlaceholderImage
		}
		input.Images = []string{placeholder}
	}
	return input, nil
}

// FormFromProduct pre-fills an edit form from an existing product.
func FormFromProduct(p catalog.Product) ProductForm {
	form := ProductForm{
		Title:       p.Title,
		Price:       p.Price.String(),
		Description: p.Description,
		Images:      strings.Join(p.Images, ", "),
	}
	if id := p.CategoryID(); id != 0 {
		form.CategoryID = strconv.Itoa(id)
	}
	return form
}

// SplitImages splits a comma-separated URL list, trimming whitespace and
// dropping empty entries. It never returns nil.
func SplitImages(raw string) []string {
	parts := strings.Split(raw, ",")
	images := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			images = append(images, p)
		}
	}
	return images
}

func (f ProductForm) trimmed() ProductForm {
	return ProductForm{
		Title:       strings.TrimSpace(f.Title),
		Price:       strings.TrimSpace(f.Price),
		Description: strings.TrimSpace(f.Description),
		CategoryID:  strings.TrimSpace(f.CategoryID),
		Images:      f.Images,
	}
}

func toFormError(verrs validator.ValidationErrors) *FormError {
	fe := &FormError{Fields: make([]FieldError, 0, len(verrs))}
	for _, v := range verrs {
		name := formFieldNames[v.StructField()]
		if name == "" {
			name = v.Field()
		}

		var msg string
		switch v.Tag() {
		case "required":
			msg = "is required"
		case "decimal":
			msg = "must be a number"
		case "number":
			msg = "must be a whole number"
		default:
			msg = "is invalid"
		}
		fe.Fields = append(fe.Fields, FieldError{Field: name, Message: msg})
	}
	return fe
}
