// file: internal/rbac/rbac.go
// version: 1.0.0
// guid: 413b87c9-0bc8-4d02-8510-8bb047a57106

// Package rbac answers role-based authorization questions from a permission
// matrix embedded at build time.
package rbac

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed permissions.yaml
var permissionsYAML []byte

type matrix struct {
	Roles     map[string][]string            `yaml:"roles"`
	Resources map[string]map[string][]string `yaml:"resources"`
}

var table matrix

func init() {
	if err := yaml.Unmarshal(permissionsYAML, &table); err != nil {
		panic(fmt.Sprintf("rbac: invalid permissions.yaml: %v", err))
	}
}

// RoleValid reports whether role exists in the matrix.
func RoleValid(role string) bool {
	_, ok := table.Roles[role]
	return ok
}

// Roles returns the known role names.
func Roles() []string {
	out := make([]string, 0, len(table.Roles))
	for role := range table.Roles {
		out = append(out, role)
	}
	return out
}

// HasPermission reports whether role carries the global permission.
func HasPermission(role, permission string) bool {
	for _, p := range table.Roles[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// HasResourcePermission reports whether role may perform action on resource.
// Unknown resources deny everything.
func HasResourcePermission(role, resource, action string) bool {
	actions, ok := table.Resources[resource]
	if !ok {
		return false
	}
	for _, a := range actions[role] {
		if a == action {
			return true
		}
	}
	return false
}
