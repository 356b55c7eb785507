package guard

import (
	"fmt"
	"strings"
	"time"

	"agritrack/internal/entities"

	"github.com/golang-jwt/jwt/v5"
)

type Action string

const (
	ActionAllow    Action = "ALLOW"
	ActionRedirect Action = "REDIRECT"
)

const EntryPoint = "/"

type Decision struct {
	Action Action
	Target string
}

func Allow() Decision {
	return Decision{Action: ActionAllow}
}

func Redirect(target string) Decision {
	return Decision{Action: ActionRedirect, Target: target}
}

var publicPaths = map[string]struct{}{
	"/":         {},
	"/login":    {},
	"/register": {},
}

var protectedPrefixes = []struct {
	prefix string
	role   entities.Role
}{
	{prefix: "/driver", role: entities.RoleDriver},
	{prefix: "/farmer", role: entities.RoleOriginator},
	{prefix: "/dashboard", role: entities.RoleDepotOperator},
}

var homes = map[entities.Role]string{
	entities.RoleDriver:        "/driver",
	entities.RoleOriginator:    "/farmer",
	entities.RoleDepotOperator: "/dashboard",
}

// Home - домашний раздел роли.
func Home(role entities.Role) string {
	if home, ok := homes[role]; ok {
		return home
	}
	return EntryPoint
}

type Claims struct {
	Role      entities.Role
	Subject   string
	ExpiresAt *time.Time
}

type tokenClaims struct {
	UserID any    `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Guard решает, пускать ли запрос к разделу. Подпись credential не проверяется,
// это делает удаленный сервис на каждом вызове.
type Guard struct {
	parser *jwt.Parser
	now    func() time.Time
}

func New() *Guard {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Guard {
	return &Guard{
		parser: jwt.NewParser(),
		now:    now,
	}
}

// Decide - чистая функция от пути и credential, без кэша.
func (g *Guard) Decide(path, credential string) Decision {
	path = normalize(path)

	if _, ok := publicPaths[path]; ok {
		if credential == "" {
			return Allow()
		}
		claims, err := g.Claims(credential)
		if err != nil {
			// с битым credential можно зайти заново
			return Allow()
		}
		return Redirect(Home(claims.Role))
	}

	if credential == "" {
		return Redirect(EntryPoint)
	}
	claims, err := g.Claims(credential)
	if err != nil {
		return Redirect(EntryPoint)
	}

	required, ok := requiredRole(path)
	if !ok {
		return Allow()
	}
	if claims.Role != required {
		return Redirect(EntryPoint)
	}
	return Allow()
}

// Claims декодирует credential. Истекший exp и роль вне набора считаются ошибкой декодирования.
func (g *Guard) Claims(credential string) (Claims, error) {
	if credential == "" {
		return Claims{}, ErrNoCredential
	}

	var tc tokenClaims
	if _, _, err := g.parser.ParseUnverified(credential, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	role, ok := entities.ParseRole(tc.Role)
	if !ok {
		return Claims{}, fmt.Errorf("%w: %q", ErrInvalidRoleClaim, tc.Role)
	}

	claims := Claims{Role: role, Subject: subject(tc)}
	if tc.ExpiresAt != nil {
		exp := tc.ExpiresAt.Time
		if !g.now().Before(exp) {
			return Claims{}, ErrExpiredToken
		}
		claims.ExpiresAt = &exp
	}
	return claims, nil
}

func requiredRole(path string) (entities.Role, bool) {
	for _, p := range protectedPrefixes {
		if path == p.prefix || strings.HasPrefix(path, p.prefix+"/") {
			return p.role, true
		}
	}
	return "", false
}

func subject(tc tokenClaims) string {
	if tc.UserID != nil {
		return fmt.Sprint(tc.UserID)
	}
	return tc.Subject
}

func normalize(path string) string {
	if path == "" {
		return EntryPoint
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return EntryPoint
		}
	}
	return path
}
