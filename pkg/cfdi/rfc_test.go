package cfdi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/reciboo-portal/pkg/cfdi"
)

func TestValidateRFC(t *testing.T) {
	valid := []string{"ATE123456XYZ", "BIN456789ABC", "ate-123456-xyz", "GOMJ800101AB1"}
	for _, rfc := range valid {
		assert.NoError(t, cfdi.ValidateRFC(rfc), rfc)
	}
	invalid := []string{"", "AT123456XYZ", "ATE12345XYZ", "ATE123456XY", "12E123456XYZ"}
	for _, rfc := range invalid {
		assert.Error(t, cfdi.ValidateRFC(rfc), rfc)
	}
}

func TestNormalizeRFC(t *testing.T) {
	assert.Equal(t, "ATE123456XYZ", cfdi.NormalizeRFC("  ate 123456-xyz "))
	assert.True(t, cfdi.IsPersonaMoral("ATE123456XYZ"))
	assert.False(t, cfdi.IsPersonaMoral("GOMJ800101AB1"))
}
