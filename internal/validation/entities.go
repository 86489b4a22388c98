// Package validation builds forum entities from untrusted payloads.
//
// Every constructor checks presence before type: a payload with a missing or
// empty field fails with NOT_CONTAIN_NEEDED_PROPERTY even if another field
// also has the wrong type.
package validation

import (
	"forumapi/internal/models"

	"github.com/go-playground/validator/v10"
)

// Payload is a decoded JSON object or a storage row flattened into one.
type Payload map[string]any

const (
	reasonMissing  = "NOT_CONTAIN_NEEDED_PROPERTY"
	reasonDataType = "NOT_MEET_DATA_TYPE_SPECIFICATION"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type schema struct {
	entity     string
	fields     []string
	missingMsg string
	typeMsg    string
	internal   bool
}

var (
	newThreadSchema = schema{
		entity:     "NEW_THREAD",
		fields:     []string{"title", "body"},
		missingMsg: "tidak dapat membuat thread baru karena properti yang dibutuhkan tidak ada",
		typeMsg:    "tidak dapat membuat thread baru karena tipe data tidak sesuai",
	}
	newCommentSchema = schema{
		entity:     "NEW_COMMENT",
		fields:     []string{"content"},
		missingMsg: "tidak dapat membuat komentar baru karena properti yang dibutuhkan tidak ada",
		typeMsg:    "komentar harus berupa string",
	}
	newReplySchema = schema{
		entity:     "NEW_REPLY",
		fields:     []string{"content"},
		missingMsg: "tidak dapat membuat balasan baru karena properti yang dibutuhkan tidak ada",
		typeMsg:    "balasan harus berupa string",
	}
	addedThreadSchema = schema{
		entity:     "ADDED_THREAD",
		fields:     []string{"id", "title", "owner"},
		missingMsg: "thread yang tersimpan tidak lengkap",
		typeMsg:    "thread yang tersimpan memiliki tipe data tidak sesuai",
		internal:   true,
	}
	addedCommentSchema = schema{
		entity:     "ADDED_COMMENT",
		fields:     []string{"id", "content", "owner"},
		missingMsg: "komentar yang tersimpan tidak lengkap",
		typeMsg:    "komentar yang tersimpan memiliki tipe data tidak sesuai",
		internal:   true,
	}
	addedReplySchema = schema{
		entity:     "ADDED_REPLY",
		fields:     []string{"id", "content", "owner"},
		missingMsg: "balasan yang tersimpan tidak lengkap",
		typeMsg:    "balasan yang tersimpan memiliki tipe data tidak sesuai",
		internal:   true,
	}
)

func (s schema) fail(reason, message string) *models.AppError {
	err := models.NewValidationError(s.entity+"."+reason, message)
	if s.internal {
		// Malformed rows coming back from storage are a server fault.
		err.Code = models.CodeInternal
	}
	return err
}

// check returns the string value of every field in schema order.
func (s schema) check(p Payload) ([]string, error) {
	for _, field := range s.fields {
		raw, ok := p[field]
		if !ok || raw == nil {
			return nil, s.fail(reasonMissing, s.missingMsg)
		}
		// "required" rejects zero values (empty string, 0, false), which are
		// treated as absent.
		if err := validate.Var(raw, "required"); err != nil {
			return nil, s.fail(reasonMissing, s.missingMsg)
		}
	}

	values := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		v, ok := p[field].(string)
		if !ok {
			return nil, s.fail(reasonDataType, s.typeMsg)
		}
		values = append(values, v)
	}
	return values, nil
}

func NewThread(p Payload) (*models.NewThread, error) {
	v, err := newThreadSchema.check(p)
	if err != nil {
		return nil, err
	}
	return &models.NewThread{Title: v[0], Body: v[1]}, nil
}

func NewComment(p Payload) (*models.NewComment, error) {
	v, err := newCommentSchema.check(p)
	if err != nil {
		return nil, err
	}
	return &models.NewComment{Content: v[0]}, nil
}

func NewReply(p Payload) (*models.NewReply, error) {
	v, err := newReplySchema.check(p)
	if err != nil {
		return nil, err
	}
	return &models.NewReply{Content: v[0]}, nil
}

func AddedThread(p Payload) (*models.AddedThread, error) {
	v, err := addedThreadSchema.check(p)
	if err != nil {
		return nil, err
	}
	return &models.AddedThread{ID: v[0], Title: v[1], Owner: v[2]}, nil
}

func AddedComment(p Payload) (*models.AddedComment, error) {
	v, err := addedCommentSchema.check(p)
	if err != nil {
		return nil, err
	}
	return &models.AddedComment{ID: v[0], Content: v[1], Owner: v[2]}, nil
}

func AddedReply(p Payload) (*models.AddedReply, error) {
	v, err := addedReplySchema.check(p)
	if err != nil {
		return nil, err
	}
	return &models.AddedReply{ID: v[0], Content: v[1], Owner: v[2]}, nil
}
