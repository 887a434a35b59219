package service

import "fmt"

// Таксономия ошибок подсистемы расписаний.
// ValidationError никогда не доходит до базы, NotFoundError приходит
// из неё, TransportError оборачивает сетевые/пуловые сбои. Ничто из
// этого не роняет приложение: HTTP-слой превращает ошибки в ответы.

// ValidationError нарушение предусловий на стороне клиента.
// Message показывается пользователю как есть (на французском).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError запрошенная сущность не существует
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// TransportError сбой обращения к хранилищу
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PartialImportError часть строк импорта не записалась.
// Это предупреждение, а не жёсткий сбой: успешные слоты остаются.
type PartialImportError struct {
	Succeeded int
	Failed    int
}

func (e *PartialImportError) Error() string {
	return fmt.Sprintf("import partiel: %d réussi(s), %d échec(s)", e.Succeeded, e.Failed)
}

// Пользовательские сообщения форм (язык портала - французский)
const (
	msgRequiredFields = "Veuillez remplir tous les champs obligatoires"
	msgEndAfterStart  = "L'heure de fin doit être après l'heure de début"
	msgBadTimeFormat  = "Format d'heure invalide (attendu HH:MM)"
	msgBadDateFormat  = "Format de date invalide (attendu AAAA-MM-JJ)"
	msgBadColor       = "Couleur invalide"
)
