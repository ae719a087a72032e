// Package users handles registration, login, profile editing and logout.
// Validation runs locally before any backend call; backend rejections are
// surfaced to the browser with the server's own message.
package users

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/fernandomartin18/UbicAir/models"
)

const (
	minPasswordLength = 6
	// maxPhotoBytes caps the decoded profile photo at 5MB.
	maxPhotoBytes = 5 * 1024 * 1024
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateRegistration checks a signup form and returns one message per
// failing field, keyed by field name. An empty map means the form is valid.
func ValidateRegistration(name, email, password, confirm string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(name) == "" {
		errs["nombre"] = "El nombre es obligatorio"
	}
	validateCredentials(email, password, errs)
	if confirm != password {
		errs["confirmPassword"] = "Las contraseñas no coinciden"
	}
	return errs
}

// ValidateLogin checks a login form the same way.
func ValidateLogin(email, password string) map[string]string {
	errs := map[string]string{}
	validateCredentials(email, password, errs)
	return errs
}

func validateCredentials(email, password string, errs map[string]string) {
	if strings.TrimSpace(email) == "" {
		errs["email"] = "El email es obligatorio"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "El email no es válido"
	}
	if password == "" {
		errs["password"] = "La contraseña es obligatoria"
	} else if len(password) < minPasswordLength {
		errs["password"] = fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minPasswordLength)
	}
}

// ValidatePhoto checks a profile photo data URI: it must declare an image
// media type and decode to at most maxPhotoBytes.
func ValidatePhoto(dataURI string) error {
	if dataURI == "" {
		return nil
	}
	if !strings.HasPrefix(dataURI, "data:image/") {
		return fmt.Errorf("profile photo must be an image")
	}
	idx := strings.Index(dataURI, ",")
	if idx < 0 {
		return fmt.Errorf("profile photo is not a valid data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+1:])
	if err != nil {
		return fmt.Errorf("profile photo is not valid base64: %w", err)
	}
	if len(raw) > maxPhotoBytes {
		return fmt.Errorf("profile photo exceeds %dMB", maxPhotoBytes/(1024*1024))
	}
	return nil
}

// DiffProfile builds an update containing only the fields that changed
// against the current profile. Password is always an explicit change.
func DiffProfile(current *models.User, name, email, password, photo string) models.UserUpdate {
	update := models.UserUpdate{}
	if name != "" && name != current.Name {
		update.Name = name
	}
	if email != "" && email != current.Email {
		update.Email = email
	}
	if password != "" {
		update.Password = password
	}
	if photo != "" && photo != current.Photo {
		update.Photo = photo
	}
	return update
}

// IsEmptyUpdate reports whether the update would change nothing.
func IsEmptyUpdate(u models.UserUpdate) bool {
	return u == (models.UserUpdate{})
}
