package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
)

const (
	maxPasswordLength = 128
	minPasswordLength = 8
	maxEmailLength    = 254
	maxTitleLength    = 255
	maxTextLength     = 20000
	maxCommentLength  = 2000
)

func init() {
	validate = validator.New()
	// Erros de campo saem com o nome do input do formulário, não o do struct.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r ValidationResult) FieldError(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// structErrors avalia as tags `validate` do struct e devolve os erros de campo.
func structErrors(s any) validator.ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email é obrigatório")
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("email muito longo (máximo %d caracteres)", maxEmailLength)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("formato de email inválido")
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("senha é obrigatória")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("senha deve ter pelo menos %d caracteres", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("senha muito longa (máximo %d caracteres)", maxPasswordLength)
	}
	return nil
}

// PostForm é o payload do formulário de criação/edição de post.
type PostForm struct {
	Title       string    `form:"title" validate:"required,max=255"`
	Text        string    `form:"text" validate:"required,max=20000"`
	CategoryID  int64     `form:"category" validate:"required,gt=0"`
	PubDate     time.Time `form:"pub_date" validate:"required"`
	IsPublished bool      `form:"is_published"`
}

func ValidatePostForm(form PostForm) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	for _, fe := range structErrors(form) {
		switch {
		case fe.Field() == "title" && fe.Tag() == "required":
			result.addError("title", "título é obrigatório")
		case fe.Field() == "title":
			result.addError("title", fmt.Sprintf("título muito longo (máximo %d caracteres)", maxTitleLength))
		case fe.Field() == "text" && fe.Tag() == "required":
			result.addError("text", "texto é obrigatório")
		case fe.Field() == "text":
			result.addError("text", fmt.Sprintf("texto muito longo (máximo %d caracteres)", maxTextLength))
		case fe.Field() == "category":
			result.addError("category", "categoria é obrigatória")
		case fe.Field() == "pub_date":
			result.addError("pub_date", "data de publicação é obrigatória")
		}
	}

	return result
}

type CommentForm struct {
	Text string `form:"text" validate:"required,max=2000"`
}

func ValidateCommentForm(form CommentForm) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	for _, fe := range structErrors(form) {
		if fe.Tag() == "required" {
			result.addError("text", "comentário não pode ser vazio")
		} else {
			result.addError("text", fmt.Sprintf("comentário muito longo (máximo %d caracteres)", maxCommentLength))
		}
	}

	return result
}

type ProfileForm struct {
	DisplayName string `form:"display_name" validate:"max=100"`
	Email       string `form:"email" validate:"required,email,max=254"`
}

func ValidateProfileForm(form ProfileForm) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	for _, fe := range structErrors(form) {
		switch {
		case fe.Field() == "display_name":
			result.addError("display_name", "nome muito longo (máximo 100 caracteres)")
		case fe.Field() == "email" && fe.Tag() == "required":
			result.addError("email", "email é obrigatório")
		case fe.Field() == "email" && fe.Tag() == "max":
			result.addError("email", fmt.Sprintf("email muito longo (máximo %d caracteres)", maxEmailLength))
		case fe.Field() == "email":
			result.addError("email", "formato de email inválido")
		}
	}

	return result
}

func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username é obrigatório")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username deve ter 3-30 caracteres (letras, números, _ ou -)")
	}
	return nil
}

func ValidateRegistration(username, email, password string) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []ValidationError{}}

	if err := ValidateUsername(username); err != nil {
		result.addError("username", err.Error())
	}
	if err := ValidateEmail(email); err != nil {
		result.addError("email", err.Error())
	}
	if err := ValidatePassword(password); err != nil {
		result.addError("password", err.Error())
	}

	return result
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}
