package auth

import (
	"fmt"

	folderSvc "folio/internal/domain/services/folder"
)

// SessionUser is the user the folder manager works for. The server hosts a
// single folder session, so the uid comes from configuration.
type SessionUser struct {
	uid int64
}

var _ folderSvc.FolderUser = SessionUser{}

// NewSessionUser creates the session user
func NewSessionUser(uid int64) SessionUser {
	return SessionUser{uid: uid}
}

// UserID implements folderSvc.FolderUser
func (u SessionUser) UserID() (int64, error) {
	if u.uid <= 0 {
		return 0, fmt.Errorf("invalid session user id %d", u.uid)
	}
	return u.uid, nil
}
