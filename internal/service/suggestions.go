package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gcandido/finance-sniper-go/internal/domain"
	"github.com/gcandido/finance-sniper-go/internal/infra/observability"
)

// projectCatalog maps a project type to the items such a project usually
// needs, in rough priority order.
var projectCatalog = map[string][]string{
	"pc": {
		"Placa de Video (GPU)",
		"Processador (CPU)",
		"Memoria RAM",
		"SSD/HD",
		"Placa Mae",
		"Fonte",
		"Gabinete",
		"Cooler",
		"Monitor",
		"Teclado",
		"Mouse",
		"Headset",
	},
	"casa": {
		"Sofa",
		"Mesa de Jantar",
		"Cama",
		"Guarda-roupa",
		"TV",
		"Ar Condicionado",
		"Geladeira",
		"Fogao",
		"Micro-ondas",
	},
	"eletro": {
		"Geladeira",
		"Fogao",
		"Maquina de Lavar",
		"Micro-ondas",
		"Ar Condicionado",
		"Aspirador de Po",
	},
	"moveis": {
		"Sofa",
		"Cama",
		"Mesa",
		"Cadeiras",
		"Guarda-roupa",
		"Estante",
		"Rack",
	},
	"eletronicos": {
		"Smartphone",
		"Tablet",
		"Notebook",
		"Smart TV",
		"Fone de Ouvido",
		"Smartwatch",
	},
}

// Suggestions builds "for you" item lists for purchase projects from the
// static catalog, filtered against what the user already owns.
type Suggestions struct {
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewSuggestions creates the suggestions service.
func NewSuggestions(metrics *observability.Metrics, logger *zap.Logger) *Suggestions {
	return &Suggestions{metrics: metrics, logger: logger}
}

// ForProject lists the catalog items a project is still missing. Unknown
// project types yield an empty list rather than an error.
func (s *Suggestions) ForProject(ctx context.Context, projectName, projectType string, existingItems []string) *domain.ProjectSuggestions {
	_, span := tracer.Start(ctx, "Suggestions.ForProject")
	defer span.End()
	span.SetAttributes(attribute.String("project.type", projectType))

	base := projectCatalog[strings.ToLower(strings.TrimSpace(projectType))]

	existingLower := make([]string, 0, len(existingItems))
	for _, item := range existingItems {
		existingLower = append(existingLower, strings.ToLower(item))
	}

	missing := make([]string, 0, len(base))
	for _, candidate := range base {
		if !owned(candidate, existingLower) {
			missing = append(missing, candidate)
		}
	}

	s.metrics.IncrAnalysis("suggestions")

	if existingItems == nil {
		existingItems = []string{}
	}
	return &domain.ProjectSuggestions{
		ProjectName:   projectName,
		ProjectType:   projectType,
		ExistingItems: existingItems,
		MissingItems:  missing,
		AISuggestions: rankMissing(missing),
	}
}

// owned matches loosely in both directions so "GPU RTX 4070" covers
// "Placa de Video (GPU)" and vice versa.
func owned(candidate string, existingLower []string) bool {
	cl := strings.ToLower(candidate)
	for _, existing := range existingLower {
		if existing == "" {
			continue
		}
		if strings.Contains(existing, cl) || strings.Contains(cl, existing) {
			return true
		}
	}
	return false
}

// rankMissing derives the priority view from catalog order: top five as
// suggestions, top three as the priority list.
func rankMissing(missing []string) *domain.AISuggestions {
	top := func(n int) []string {
		if len(missing) < n {
			n = len(missing)
		}
		out := make([]string, n)
		copy(out, missing[:n])
		return out
	}
	return &domain.AISuggestions{
		Suggestions:   top(5),
		Reasoning:     "Baseado no tipo de projeto selecionado.",
		PriorityOrder: top(3),
	}
}
