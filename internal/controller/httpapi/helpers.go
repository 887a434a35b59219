package httpapi

import (
	"time"

	"github.com/espaceform/formation_portal/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseIDParam разбирает uuid из параметра пути
func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, &service.ValidationError{Message: "Identifiant invalide"}
	}
	return id, nil
}

// dateQuery разбирает ?date=AAAA-MM-JJ, по умолчанию сегодня
func dateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return time.Now(), nil
	}

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &service.ValidationError{Message: "Format de date invalide (attendu AAAA-MM-JJ)"}
	}
	return date, nil
}

// parseBodyDate разбирает дату AAAA-MM-JJ из тела запроса
func parseBodyDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &service.ValidationError{Message: "Format de date invalide (attendu AAAA-MM-JJ)"}
	}
	return date, nil
}
