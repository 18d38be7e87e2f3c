package authz

// Gatekeeper решает, разрешено ли роли действие.
type Gatekeeper struct {
	matrix map[string]map[string]bool
}

func NewGatekeeper(matrix map[string]map[string]bool) *Gatekeeper {
	if matrix == nil {
		matrix = DefaultMatrix()
	}
	return &Gatekeeper{matrix: matrix}
}

func (g *Gatekeeper) Can(role, permission string) bool {
	perms, ok := g.matrix[role]
	if !ok {
		return false
	}
	if perms[Superuser] {
		return true
	}
	return perms[permission]
}

// Permissions возвращает список прав роли, для ответа /auth/me.
func (g *Gatekeeper) Permissions(role string) []string {
	perms := g.matrix[role]
	out := make([]string, 0, len(perms))
	for p, allowed := range perms {
		if allowed {
			out = append(out, p)
		}
	}
	return out
}
