package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/armandorgr/Project-manager/pkg/authsdk"
	"github.com/armandorgr/Project-manager/pkg/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// On failure the error body has already been written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		authsdk.ErrBadRequest.WithMessage(err.Error()).WriteError(w)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		authsdk.ErrValidation.WithDetails(validationDetails(err)).WriteError(w)
		return false
	}
	return true
}

// validationDetails flattens validator errors into json-field -> failed tag.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return out
}

// validateMemberTarget requires a username or an email to name the member.
func validateMemberTarget(req authsdk.AddMemberRequest) map[string]string {
	if strings.TrimSpace(req.Username) != "" || strings.TrimSpace(req.Email) != "" {
		return nil
	}
	return map[string]string{
		"username": "one of username or email is required",
		"email":    "one of username or email is required",
	}
}
