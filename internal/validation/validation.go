// package validation checks form submissions before they reach the document
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/desertthunder/tfx/internal/models"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}
	must("trimmedmin", trimmedMin)
	must("playlisttype", playlistType)
	must("urlorfolder", urlOrFolder)
	must("halfhour", halfHour)
	must("isodate", isoDate)
	must("hashints", hashInts)
	must("palette", palette)

	v.RegisterStructValidation(logoExclusive, GraphicsInput{})
	v.RegisterStructValidation(settingsEmail, SettingsInput{})
	return v
}

func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func playlistType(fl validator.FieldLevel) bool {
	return models.PlaylistType(fl.Field().String()).Valid()
}

// urlOrFolder accepts an http(s) stream URL, or a folder list of at least two characters.
func urlOrFolder(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(s)
		return err == nil && u.Host != ""
	}
	return utf8.RuneCountInString(s) >= 2
}

func halfHour(fl validator.FieldLevel) bool {
	return models.IsTimeSlot(fl.Field().String())
}

func isoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// hashInts accepts "#"-delimited non-negative integers; empty segments are ignored.
func hashInts(fl validator.FieldLevel) bool {
	for _, part := range shared.SplitHashList(fl.Field().String()) {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return false
		}
	}
	return true
}

func palette(fl validator.FieldLevel) bool {
	return models.IsPaletteColor(fl.Field().String())
}

func logoExclusive(sl validator.StructLevel) {
	g := sl.Current().Interface().(GraphicsInput)
	if g.DisplayLogo != nil && g.DisplayLiveLogo != nil && *g.DisplayLogo && *g.DisplayLiveLogo {
		sl.ReportError(g.DisplayLiveLogo, "displayLiveLogo", "DisplayLiveLogo", "logo", "")
	}
}

func settingsEmail(sl validator.StructLevel) {
	in := sl.Current().Interface().(SettingsInput)
	if in.Email == nil || strings.TrimSpace(*in.Email) == "" {
		return
	}
	if err := sl.Validator().Var(strings.TrimSpace(*in.Email), "email"); err != nil {
		sl.ReportError(in.Email, "email", "Email", "email", "")
	}
}

// ValidatePlaylist checks a playlist form submission.
func ValidatePlaylist(in PlaylistInput) error {
	return check("playlist", in)
}

// ValidateSchedule checks a schedule form submission.
func ValidateSchedule(in ScheduleInput) error {
	return check("schedule", in)
}

// ValidateSettings checks the onboarding form.
func ValidateSettings(in SettingsInput) error {
	return check("settings", in)
}

// check runs the struct rules and converts failures into a [shared.ValidationError].
func check(kind string, in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	out := &shared.ValidationError{Kind: kind, Fields: make([]shared.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, shared.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath drops the struct name that prefixes every namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "trimmedmin":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "min":
		if fe.Param() == "0" {
			return "Must not be negative."
		}
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "playlisttype":
		return "Unknown playlist type."
	case "urlorfolder":
		return "Enter a valid http(s) URL or a folder name of at least 2 characters."
	case "halfhour":
		return "Start time must be on the hour or half hour."
	case "isodate":
		return "Invalid date."
	case "hashints":
		return "Use whole minutes separated by #."
	case "palette":
		return "Pick a colour from the palette."
	case "logo":
		return "Only one logo can be displayed."
	case "email":
		return "Invalid email address."
	default:
		return fmt.Sprintf("Failed the %s rule.", fe.Tag())
	}
}
