package services

import (
	"errors"

	"github.com/SalahTracker/repositories"
)

var (
	ErrDataUnavailable        = errors.New("schedule unavailable")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrInvalidState           = errors.New("invalid state")

	ErrInvalidPrayer  = errors.New("unknown prayer name")
	ErrInvalidStatus  = errors.New("status must be prayed or missed")
	ErrInvalidDate    = errors.New("date must be YYYY-MM-DD")
	ErrFutureDate     = errors.New("cannot mark a prayer for a future date")
	ErrAlreadyMarked  = errors.New("prayer already marked for this date")
	ErrCardNotFound   = errors.New("good deed card not in deck")
	ErrUnknownTrack   = errors.New("unknown quran track")
	ErrInvalidSession = errors.New("session not found")
)

// persistence maps store failures onto ErrPersistenceUnavailable.
func persistence(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrUnavailable) {
		return errors.Join(ErrPersistenceUnavailable, err)
	}
	return err
}
