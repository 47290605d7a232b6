package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	user := &User{Email: "student@example.com", Password: "plain-password"}

	err := user.BeforeSave(nil)
	require.NoError(t, err)

	assert.NotEqual(t, "plain-password", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$2a$"))
	assert.True(t, user.CheckPassword("plain-password"))
	assert.False(t, user.CheckPassword("wrong-password"))
}

func TestUser_BeforeSave_SkipsAlreadyHashed(t *testing.T) {
	user := &User{Email: "student@example.com", Password: "plain-password"}
	require.NoError(t, user.BeforeSave(nil))

	hashed := user.Password
	require.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, hashed, user.Password)
}

func TestUser_Roles(t *testing.T) {
	student := &User{Role: RoleStudent}
	teacher := &User{Role: RoleTeacher}
	institution := &User{Role: RoleInstitution}

	assert.True(t, student.IsStudent())
	assert.False(t, student.IsReviewer())

	assert.False(t, teacher.IsStudent())
	assert.True(t, teacher.IsReviewer())
	assert.True(t, institution.IsReviewer())
}
