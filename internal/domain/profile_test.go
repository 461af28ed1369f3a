package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Empresa ")
	require.NoError(t, err)
	assert.Equal(t, RoleCompany, r)

	r, err = ParseRole("freelancer")
	require.NoError(t, err)
	assert.Equal(t, RoleFreelancer, r)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestNewRoleProfile_Defaults(t *testing.T) {
	p, err := NewRoleProfile(RoleCompany, 50)
	require.NoError(t, err)
	company := p.(*CompanyProfile)
	assert.Equal(t, DefaultSector, company.Sector)
	assert.Empty(t, company.Identifier())
	assert.False(t, company.HasValidIdentifier())

	p, err = NewRoleProfile(RoleFreelancer, 75)
	require.NoError(t, err)
	freelancer := p.(*FreelancerProfile)
	assert.Equal(t, 75.0, freelancer.HourlyRate)
	assert.NotNil(t, freelancer.Skills)
	assert.Equal(t, RoleFreelancer, freelancer.ProfileRole())

	_, err = NewRoleProfile(Role("admin"), 0)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestHasValidIdentifier(t *testing.T) {
	c := &CompanyProfile{CNPJ: "11222333000181"}
	assert.True(t, c.HasValidIdentifier())
	c.CNPJ = "11222333000182"
	assert.False(t, c.HasValidIdentifier())

	f := &FreelancerProfile{CPF: "52998224725"}
	assert.True(t, f.HasValidIdentifier())
	f.CPF = "00000000000"
	assert.False(t, f.HasValidIdentifier())

	f.AttachTo(9)
	assert.Equal(t, int64(9), f.UserID)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
