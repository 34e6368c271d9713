package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/workhub/internal/domain"
)

const dateLayout = "2006-01-02"

// pageFlags are the --page/--size pair shared by list commands.
type pageFlags struct {
	page int
	size int
}

func (p *pageFlags) register(fs *pflag.FlagSet, defaultSize int) {
	fs.IntVar(&p.page, "page", 1, "Page number (1-based)")
	fs.IntVar(&p.size, "size", defaultSize, "Items per page")
}

// dateValue is an optional YYYY-MM-DD flag. It writes through a pointer so
// an unset flag stays nil.
type dateValue struct {
	t **time.Time
}

func newDateValue(t **time.Time) *dateValue { return &dateValue{t: t} }

func (d *dateValue) String() string {
	if d.t == nil || *d.t == nil {
		return ""
	}
	return (*d.t).Format(dateLayout)
}

func (d *dateValue) Set(s string) error {
	v, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	*d.t = &v
	return nil
}

func (d *dateValue) Type() string { return "date" }

// enumValue restricts a string flag to a fixed set, compared
// case-insensitively. The accepted spelling is stored upper-cased.
type enumValue struct {
	target  *string
	allowed []string
}

func newEnumValue(target *string, allowed ...string) *enumValue {
	return &enumValue{target: target, allowed: allowed}
}

func (e *enumValue) String() string { return *e.target }

func (e *enumValue) Set(s string) error {
	for _, a := range e.allowed {
		if strings.EqualFold(a, s) {
			*e.target = a
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return "string" }

func projectStatusNames() []string {
	out := make([]string, len(domain.ProjectStatuses))
	for i, s := range domain.ProjectStatuses {
		out[i] = string(s)
	}
	return out
}

func userRoleNames() []string {
	return []string{string(domain.RoleAdmin), string(domain.RoleDeveloper), string(domain.RoleClient)}
}

func companyStatusNames() []string {
	return []string{string(domain.CompanyActive), string(domain.CompanyInactive), string(domain.CompanySuspended)}
}

// parseID parses a positive numeric identifier argument. A leading "#" as
// printed in tables is accepted.
func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", kind, s)
	}
	return id, nil
}

// createExportFile opens path for an export, truncating an existing file.
func createExportFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating export file: %w", err)
	}
	return f, nil
}
