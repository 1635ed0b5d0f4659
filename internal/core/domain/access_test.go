package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityOf(t *testing.T) {
	assert.Equal(t, CapAdmin, CapabilityOf(RoleAdmin))
	assert.Equal(t, CapEmployee, CapabilityOf(RoleEmployee))
	assert.Equal(t, CapJobSeeker, CapabilityOf(RoleJobSeeker))
	assert.Equal(t, CapNone, CapabilityOf(Role("guest")))
}

func TestGates(t *testing.T) {
	admin := Actor{ID: "a1", Capability: CapAdmin}
	employee := Actor{ID: "e1", Capability: CapEmployee}
	seeker := Actor{ID: "s1", Capability: CapJobSeeker}

	tests := []struct {
		name  string
		gate  Gate
		actor Actor
		want  bool
	}{
		{"admin only passes admin", AdminOnly, admin, true},
		{"admin only rejects employee", AdminOnly, employee, false},
		{"admin or employee passes employee", AdminOrEmployee, employee, true},
		{"admin or employee rejects seeker", AdminOrEmployee, seeker, false},
		{"job seeker only", JobSeekerOnly, seeker, true},
		{"owns matches id", Owns("s1"), seeker, true},
		{"owns rejects other id", Owns("s2"), seeker, false},
		{"owns rejects empty owner", Owns(""), Actor{}, false},
		{"owner or admin passes owner", OwnerOrAdmin("e1"), employee, true},
		{"owner or admin passes admin", OwnerOrAdmin("e1"), admin, true},
		{"owner or admin rejects stranger", OwnerOrAdmin("e2"), employee, false},
		{"all of requires every gate", AllOf(EmployeeOnly, Owns("e1")), employee, true},
		{"all of fails on one gate", AllOf(EmployeeOnly, Owns("e2")), employee, false},
		{"empty all of fails", AllOf(), admin, false},
		{"empty any of fails", AnyOf(), admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.gate(tt.actor))
		})
	}
}

func TestActorAllow(t *testing.T) {
	seeker := ActorFor(&User{ID: "s1", Role: RoleJobSeeker})

	assert.NoError(t, seeker.Allow(Owns("s1")))
	assert.True(t, errors.Is(seeker.Allow(AdminOnly), ErrUnauthorized))
}

func TestUserNormalizeAndValidate(t *testing.T) {
	u := &User{Name: " Sam ", Email: " Sam@Example.COM ", Role: RoleJobSeeker, Company: "Acme"}
	u.Normalize()
	assert.Equal(t, "sam@example.com", u.Email)
	assert.Equal(t, "Sam", u.Name)
	assert.Empty(t, u.Company)
	assert.NoError(t, u.Validate())

	emp := &User{Name: "Eve", Email: "eve@example.com", Role: RoleEmployee}
	assert.True(t, errors.Is(emp.Validate(), ErrValidation))

	bad := &User{Name: "Bo", Email: "bo@example.com", Role: Role("root")}
	assert.True(t, errors.Is(bad.Validate(), ErrValidation))
}
