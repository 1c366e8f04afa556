package user

import (
	"context"

	"bookCatalog/internal/apperror"
)

const (
	maxEmailLength = 254
	maxNameLength  = 100
	// bcrypt only looks at the first 72 bytes and refuses longer input.
	maxPasswordLength = 72
)

func SuitableForRestrictions(emailLen, passwordLen, nameLen int) bool {
	return emailLen <= maxEmailLength && passwordLen <= maxPasswordLength && nameLen <= maxNameLength
}

func IsEmailTaken(ctx context.Context, storage Storage, email string) (bool, error) {
	_, err := storage.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case apperror.KindOf(err) == apperror.NotFound:
		return false, nil
	default:
		return false, err
	}
}
