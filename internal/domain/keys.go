package domain

type CtxKey string

const (
	KeyUserID      CtxKey = "UserID"
	KeyUserEmail   CtxKey = "Email"
	KeyAccessToken CtxKey = "AccessToken"
	KeySessionID   CtxKey = "SessionID"
	KeyDraftStore  CtxKey = "DraftStore"
)
