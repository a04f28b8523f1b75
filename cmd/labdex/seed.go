package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	domdoc "github.com/kailas-cloud/labdex/internal/domain/document"
	dommem "github.com/kailas-cloud/labdex/internal/domain/member"
	domproj "github.com/kailas-cloud/labdex/internal/domain/project"
)

const fixtureDate = "2006-01-02"

// fixture is the YAML seed file layout.
type fixture struct {
	Projects []struct {
		ID           string `yaml:"id"`
		Title        string `yaml:"title"`
		Description  string `yaml:"description"`
		Keywords     string `yaml:"keywords"`
		ResearchArea string `yaml:"research_area"`
		Status       string `yaml:"status"`
		StartDate    string `yaml:"start_date"`
		EndDate      string `yaml:"end_date"`
	} `yaml:"projects"`
	Documents []struct {
		ID          string    `yaml:"id"`
		ProjectID   string    `yaml:"project_id"`
		FileName    string    `yaml:"file_name"`
		FileType    string    `yaml:"file_type"`
		FilePath    string    `yaml:"file_path"`
		Description string    `yaml:"description"`
		UploadedBy  string    `yaml:"uploaded_by"`
		UploadDate  time.Time `yaml:"upload_date"`
		Status      string    `yaml:"status"`
	} `yaml:"documents"`
	Members []struct {
		ID         string `yaml:"id"`
		ProjectID  string `yaml:"project_id"`
		Name       string `yaml:"name"`
		Email      string `yaml:"email"`
		Role       string `yaml:"role"`
		Expertise  string `yaml:"expertise"`
		Department string `yaml:"department"`
	} `yaml:"members"`
}

// seedData is a validated fixture.
type seedData struct {
	projects  []domproj.Project
	documents []domdoc.Document
	members   []dommem.Member
}

type projectSaver interface {
	Save(ctx context.Context, p domproj.Project) (bool, error)
}

type documentSaver interface {
	Save(ctx context.Context, d domdoc.Document) (bool, error)
}

type memberSaver interface {
	Save(ctx context.Context, m dommem.Member) (bool, error)
}

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load projects, documents and team members from a YAML fixture",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			f, err := os.Open(filepath.Clean(file))
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()

			data, err := parseFixture(f)
			if err != nil {
				return err
			}

			a, err := buildApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			created, err := seed(cmd.Context(), data, a.projects, a.documents, a.members)
			if err != nil {
				return err
			}
			logger.Info("Fixture loaded",
				zap.String("file", file),
				zap.Int("projects", len(data.projects)),
				zap.Int("documents", len(data.documents)),
				zap.Int("members", len(data.members)),
				zap.Int("created", created),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func parseFixture(r io.Reader) (seedData, error) {
	var fx fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return seedData{}, fmt.Errorf("parse fixture: %w", err)
	}

	var out seedData
	for _, p := range fx.Projects {
		start, err := optionalDate(p.StartDate)
		if err != nil {
			return seedData{}, fmt.Errorf("project %s start_date: %w", p.ID, err)
		}
		end, err := optionalDate(p.EndDate)
		if err != nil {
			return seedData{}, fmt.Errorf("project %s end_date: %w", p.ID, err)
		}
		proj, err := domproj.New(p.ID, domproj.Attrs{
			Title:        p.Title,
			Description:  p.Description,
			Keywords:     p.Keywords,
			ResearchArea: p.ResearchArea,
			Status:       domproj.Status(p.Status),
			StartDate:    start,
			EndDate:      end,
		})
		if err != nil {
			return seedData{}, fmt.Errorf("project %s: %w", p.ID, err)
		}
		out.projects = append(out.projects, proj)
	}

	for _, d := range fx.Documents {
		doc, err := domdoc.New(d.ID, domdoc.Attrs{
			ProjectID:   d.ProjectID,
			FileName:    d.FileName,
			FileType:    d.FileType,
			FilePath:    d.FilePath,
			Description: d.Description,
			UploadedBy:  d.UploadedBy,
			UploadDate:  d.UploadDate,
			Status:      domdoc.Status(d.Status),
		})
		if err != nil {
			return seedData{}, fmt.Errorf("document %s: %w", d.ID, err)
		}
		out.documents = append(out.documents, doc)
	}

	for _, m := range fx.Members {
		mem, err := dommem.New(m.ID, dommem.Attrs{
			ProjectID:  m.ProjectID,
			Name:       m.Name,
			Email:      m.Email,
			Role:       m.Role,
			Expertise:  m.Expertise,
			Department: m.Department,
		})
		if err != nil {
			return seedData{}, fmt.Errorf("member %s: %w", m.ID, err)
		}
		out.members = append(out.members, mem)
	}
	return out, nil
}

// seed upserts every record and returns how many were new.
func seed(ctx context.Context, data seedData, projects projectSaver, docs documentSaver, members memberSaver) (int, error) {
	created := 0
	count := func(ok bool) {
		if ok {
			created++
		}
	}
	for _, p := range data.projects {
		ok, err := projects.Save(ctx, p)
		if err != nil {
			return created, err
		}
		count(ok)
	}
	for _, d := range data.documents {
		ok, err := docs.Save(ctx, d)
		if err != nil {
			return created, err
		}
		count(ok)
	}
	for _, m := range data.members {
		ok, err := members.Save(ctx, m)
		if err != nil {
			return created, err
		}
		count(ok)
	}
	return created, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(fixtureDate, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
