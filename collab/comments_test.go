package collab

import (
	"drive/acl"
	"drive/config"
	"drive/db"
	"drive/models"
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	config.MYSQL_DSN = ""
	config.SQLITE_FILE = "file::memory:?cache=shared"
	db.Init()
	models.Init()
	os.Exit(m.Run())
}

var userSeq = 0

func makeUser(t *testing.T, admin bool) *models.User {
	t.Helper()
	userSeq++
	user, err := models.UserCreate(fmt.Sprintf("user%d", userSeq), fmt.Sprintf("user%d@collab.test", userSeq), "pass")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if admin {
		user.Admin = true
		if err := db.Instance.Model(&user).Update("admin", true).Error; err != nil {
			t.Fatalf("promoting user: %v", err)
		}
	}
	return &user
}

func makeFile(t *testing.T, owner *models.User) *models.File {
	t.Helper()
	file := models.File{Name: "notes.txt", OwnerID: owner.ID}
	if err := db.Instance.Create(&file).Error; err != nil {
		t.Fatalf("creating file: %v", err)
	}
	return &file
}

func TestAddCommentRequiresRead(t *testing.T) {
	owner := makeUser(t, false)
	stranger := makeUser(t, false)
	file := makeFile(t, owner)

	_, err := AddComment(file.ID, stranger, "hello", 0)
	if !errors.Is(err, acl.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := acl.GrantPermission(file.ID, models.GrantTargetUser, stranger.IDString(), models.AccessLevelRead, owner); err != nil {
		t.Fatalf("GrantPermission: %v", err)
	}
	if _, err := AddComment(file.ID, stranger, "hello", 0); err != nil {
		t.Errorf("read-granted user could not comment: %v", err)
	}
}

func TestAddCommentUnknownFile(t *testing.T) {
	user := makeUser(t, false)
	_, err := AddComment(99999999, user, "hello", 0)
	if !errors.Is(err, acl.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestThreadedReplies(t *testing.T) {
	owner := makeUser(t, false)
	file := makeFile(t, owner)
	other := makeFile(t, owner)

	parent, err := AddComment(file.ID, owner, "top", 0)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	reply, err := AddComment(file.ID, owner, "reply", parent.ID)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.ParentCommentID != parent.ID {
		t.Errorf("reply not linked to parent")
	}
	// The parent must belong to the same file
	if _, err := AddComment(other.ID, owner, "bad", parent.ID); !errors.Is(err, acl.ErrNotFound) {
		t.Errorf("expected ErrNotFound for cross-file parent, got %v", err)
	}
}

func TestGetCommentsRequiresRead(t *testing.T) {
	owner := makeUser(t, false)
	stranger := makeUser(t, false)
	file := makeFile(t, owner)

	if _, err := AddComment(file.ID, owner, "hello", 0); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if _, err := GetComments(file.ID, stranger); !errors.Is(err, acl.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	comments, err := GetComments(file.ID, owner)
	if err != nil {
		t.Fatalf("GetComments: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("expected 1 comment, got %d", len(comments))
	}
}

func TestDeleteCommentAuthorOrAdminOnly(t *testing.T) {
	owner := makeUser(t, false)
	author := makeUser(t, false)
	admin := makeUser(t, true)
	file := makeFile(t, owner)

	if err := acl.GrantPermission(file.ID, models.GrantTargetUser, author.IDString(), models.AccessLevelRead, owner); err != nil {
		t.Fatalf("GrantPermission: %v", err)
	}
	comment, err := AddComment(file.ID, author, "mine", 0)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	// Owning the file does not allow deleting someone else's comment
	if err := DeleteComment(comment.ID, owner); !errors.Is(err, acl.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for file owner, got %v", err)
	}
	if err := DeleteComment(comment.ID, author); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	comments, err := GetComments(file.ID, owner)
	if err != nil {
		t.Fatalf("GetComments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("deleted comment still listed")
	}
	// Admins can delete too
	second, err := AddComment(file.ID, author, "again", 0)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if err := DeleteComment(second.ID, admin); err != nil {
		t.Errorf("admin delete failed: %v", err)
	}
}

func TestDeleteUnknownComment(t *testing.T) {
	user := makeUser(t, true)
	if err := DeleteComment(99999999, user); !errors.Is(err, acl.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
