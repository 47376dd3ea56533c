package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailSyntaxValid(t *testing.T) {
	assert.True(t, IsEmailSyntaxValid("ana@example.com"))
	assert.True(t, IsEmailSyntaxValid("ana.souza+clinic@example.com.br"))

	assert.False(t, IsEmailSyntaxValid(""))
	assert.False(t, IsEmailSyntaxValid("not-an-email"))
	assert.False(t, IsEmailSyntaxValid("ana@"))
	assert.False(t, IsEmailSyntaxValid("Ana Souza <ana@example.com>"))
}
