package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/migration"
	"github.com/jhoicas/roteiro-api/internal/application/scripts"
	"github.com/jhoicas/roteiro-api/internal/application/usecase"
	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/htmltext"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/stepfiles"
	"github.com/spf13/cobra"
)

// =============================================================================
// migrate
// =============================================================================

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copia el almacén local (LOCAL_STORE_PATH) al PostgreSQL configurado",
	Long: `Copia empresas, módulos, usuarios, productos, pasos, tabulaciones, situaciones,
canales y notas con upsert. Un registro que falla no detiene a los demás; el comando
termina con error si hubo algún fallo.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()
	if e.backend.Local == nil {
		return fmt.Errorf("no hay almacén local que migrar (STORAGE_DRIVER=postgres y LOCAL_STORE_PATH=%s)", e.cfg.Storage.LocalPath)
	}

	report := migration.NewMigrator(*e.backend.Local, e.backend.Repos, e.bus(cmd.Context()), nil, e.log).Run(cmd.Context())
	if jsonOut {
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		printMigration(cmd, report)
	}

	failed := 0
	for _, r := range report.Entities {
		failed += len(r.Errors)
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("migración con %d fallos", failed)
	}
	return nil
}

func printMigration(cmd *cobra.Command, report *dto.MigrationReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-14s %7s %9s %7s\n", "ENTIDAD", "TOTAL", "MIGRADOS", "FALLOS")
	for _, r := range report.Entities {
		fmt.Fprintf(out, "%-14s %7d %9d %7d\n", r.Entity, r.Total, r.Migrated, len(r.Errors))
		if r.Error != "" {
			fmt.Fprintf(out, "  ! %s\n", r.Error)
		}
		for _, it := range r.Errors {
			fmt.Fprintf(out, "  - %s: %s\n", it.ID, it.Error)
		}
	}
	fmt.Fprintf(out, "duración: %s\n", report.FinishedAt.Sub(report.StartedAt).Round(1e6))
}

// =============================================================================
// import-steps
// =============================================================================

var (
	importFile    string
	importCompany string
	importProduct string
	importBind    bool
	importAll     bool
)

var importStepsCmd = &cobra.Command{
	Use:   "import-steps",
	Short: "Importa una familia de pasos (STEP_FILES_DIR) en un producto o en todos los ligados",
	Example: `  roteiroctl import-steps --file roteiro-receptivo.json --company <id> --product <id> --bind
  roteiroctl import-steps --file roteiro-pj.json
  roteiroctl import-steps --all`,
	Args: cobra.NoArgs,
	RunE: runImportSteps,
}

func init() {
	f := importStepsCmd.Flags()
	f.StringVar(&importFile, "file", "", "familia: "+fmt.Sprint(entity.StepFiles))
	f.StringVar(&importCompany, "company", "", "empresa del producto")
	f.StringVar(&importProduct, "product", "", "producto destino; sin él se re-importan los productos ligados a la familia")
	f.BoolVar(&importBind, "bind", false, "ligar el producto a la familia")
	f.BoolVar(&importAll, "all", false, "re-importar las tres familias")
}

func runImportSteps(cmd *cobra.Command, _ []string) error {
	if !importAll && importFile == "" {
		return errors.New("--file o --all es obligatorio")
	}
	if importProduct != "" && importCompany == "" {
		return errors.New("--product requiere --company")
	}
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	repos := e.backend.Repos
	uc := scripts.NewImportUseCase(repos.Products, repos.Steps, stepfiles.NewLoader(e.cfg.StepFiles.Dir),
		htmltext.NewSanitizer(), e.bus(cmd.Context()), nil, e.log)
	if e.backend.Tx != nil {
		uc.WithTx(e.backend.Tx)
	}

	out := cmd.OutOrStdout()
	switch {
	case importAll:
		if err := uc.SyncAll(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "familias re-importadas")
	case importProduct != "":
		res, err := uc.Import(cmd.Context(), importCompany, importProduct, dto.ImportStepsRequest{File: importFile, Bind: importBind})
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(out, res)
		}
		fmt.Fprintf(out, "%d pasos importados en %s desde %s\n", res.Imported, res.ProductID, res.File)
	default:
		n, err := uc.ReimportFamily(cmd.Context(), importFile)
		fmt.Fprintf(out, "%d pasos re-importados desde %s\n", n, importFile)
		return err
	}
	return nil
}

// =============================================================================
// lint-script
// =============================================================================

var (
	lintCompany string
	lintProduct string
	lintPath    string
	lintEntry   string
)

var lintScriptCmd = &cobra.Command{
	Use:   "lint-script",
	Short: "Revisa destinos inexistentes y pasos inalcanzables de un roteiro",
	Long: `Con --company y --product revisa el roteiro guardado. Con --path revisa un archivo
de pasos sin conectarse al almacén; el paso de entrada es --entry o el primero del archivo.`,
	Args: cobra.NoArgs,
	RunE: runLintScript,
}

func init() {
	f := lintScriptCmd.Flags()
	f.StringVar(&lintCompany, "company", "", "empresa del producto")
	f.StringVar(&lintProduct, "product", "", "producto a revisar")
	f.StringVar(&lintPath, "path", "", "archivo JSON de pasos")
	f.StringVar(&lintEntry, "entry", "", "paso de entrada (con --path)")
}

func runLintScript(cmd *cobra.Command, _ []string) error {
	var report *navigation.LintReport
	switch {
	case lintPath != "":
		raw, err := os.ReadFile(lintPath)
		if err != nil {
			return err
		}
		steps, err := stepfiles.Parse(raw)
		if err != nil {
			return err
		}
		ptrs := make([]*entity.ScriptStep, 0, len(steps))
		for i := range steps {
			ptrs = append(ptrs, &steps[i])
		}
		entry := lintEntry
		if entry == "" && len(ptrs) > 0 {
			entry = ptrs[0].ID
		}
		r := navigation.Lint(entry, ptrs)
		report = &r
	case lintCompany != "" && lintProduct != "":
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()
		report, err = scripts.NewLintUseCase(e.backend.Repos.Products, e.backend.Repos.Steps).Lint(cmd.Context(), lintCompany, lintProduct)
		if err != nil {
			return err
		}
	default:
		return errors.New("usar --path o --company y --product")
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		if err := printJSON(out, report); err != nil {
			return err
		}
	} else {
		if report.MissingEntry {
			fmt.Fprintf(out, "paso de entrada %q no existe\n", report.EntryStepID)
		}
		for _, d := range report.Dangling {
			fmt.Fprintf(out, "destino inexistente: %s [%s] → %s\n", d.StepID, d.ButtonID, d.NextStepID)
		}
		for _, id := range report.Unreachable {
			fmt.Fprintf(out, "inalcanzable: %s\n", id)
		}
	}
	if !report.OK() {
		return errors.New("el roteiro tiene problemas")
	}
	if !jsonOut {
		fmt.Fprintln(out, "ok")
	}
	return nil
}

// =============================================================================
// companies
// =============================================================================

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Lista las empresas del almacén configurado",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()
		list, err := usecase.NewCompanyUseCase(e.backend.Repos.Companies, nil, nil, e.log).List(cmd.Context(), 100, 0)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, list)
		}
		for _, c := range list.Items {
			fmt.Fprintf(out, "%s  %-12s %s\n", c.ID, c.NIT, c.Name)
		}
		return nil
	},
}
