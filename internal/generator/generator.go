package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/seitarof/gen-meta/internal/resolver"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Generator generates member table registrations from table plans.
type Generator interface {
	Generate(cfg Config, plans []resolver.TablePlan) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Package    string
	StdImports []string
	Imports    []string
	Tables     []tableTemplateData
}

type tableTemplateData struct {
	Type    string
	Members []string
}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, plans []resolver.TablePlan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no table plans")
	}

	data, err := buildTemplateData(plans)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "table.go.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

// buildTemplateData lays out one file. Tables can only be registered from
// the package declaring their type, so every plan must share it.
func buildTemplateData(plans []resolver.TablePlan) (templateData, error) {
	pkgName := plans[0].Struct.PkgName
	pkgPath := plans[0].Struct.PkgPath
	importsSet := map[string]struct{}{"reflect": {}}
	tables := make([]tableTemplateData, 0, len(plans))

	for _, p := range plans {
		if p.Struct.PkgPath != pkgPath {
			return templateData{}, fmt.Errorf("%s.%s is not in package %s", p.Struct.PkgPath, p.Struct.Name, pkgPath)
		}
		members := make([]string, 0, len(p.Members))
		for _, m := range p.Members {
			if m.Write.Strategy != resolver.StrategySkip {
				for _, path := range m.Field.Imports {
					importsSet[path] = struct{}{}
				}
			}
			members = append(members, renderMember(p.Struct.Name, m))
		}
		tables = append(tables, tableTemplateData{Type: p.Struct.Name, Members: members})
	}

	var std, others []string
	for path := range importsSet {
		if isStdlib(path) {
			std = append(std, path)
		} else {
			others = append(others, path)
		}
	}
	sort.Strings(std)
	sort.Strings(others)

	return templateData{
		Package:    pkgName,
		StdImports: std,
		Imports:    others,
		Tables:     tables,
	}, nil
}

// isStdlib reports whether path belongs to the standard library, whose
// first path element never contains a dot.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

func renderMember(typeName string, plan resolver.MemberPlan) string {
	f := plan.Field
	var b strings.Builder
	if plan.Skipped() {
		b.WriteString("\t\t// " + f.Name + ": no compiled access, reflection is used\n")
	}
	b.WriteString("\t\t{\n")
	b.WriteString("\t\t\tName: " + strconv.Quote(f.Name) + ",\n")
	b.WriteString("\t\t\tIndex: " + renderIndex(f.Index) + ",\n")
	if f.Getter != "" {
		b.WriteString("\t\t\tGetter: " + strconv.Quote(f.Getter) + ",\n")
	}
	if f.Setter != "" {
		b.WriteString("\t\t\tSetter: " + strconv.Quote(f.Setter) + ",\n")
	}
	receiver := "\t\t\t\t" + resolver.Receiver + " := o.(*" + typeName + ")\n"
	if plan.Read.Strategy != resolver.StrategySkip {
		b.WriteString("\t\t\tRead: func(o any) any {\n")
		b.WriteString(receiver)
		b.WriteString("\t\t\t\treturn " + plan.Read.Expr + "\n")
		b.WriteString("\t\t\t},\n")
	}
	if plan.Write.Strategy != resolver.StrategySkip {
		b.WriteString("\t\t\tWrite: func(o, v any) {\n")
		b.WriteString(receiver)
		b.WriteString("\t\t\t\t" + resolver.Value + ", _ := v.(" + f.TypeStr + ")\n")
		b.WriteString("\t\t\t\t" + plan.Write.Expr + "\n")
		b.WriteString("\t\t\t},\n")
	}
	b.WriteString("\t\t},")
	return b.String()
}

func renderIndex(index []int) string {
	parts := make([]string, len(index))
	for i, x := range index {
		parts[i] = strconv.Itoa(x)
	}
	return "[]int{" + strings.Join(parts, ", ") + "}"
}
