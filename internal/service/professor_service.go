package service

import (
	"context"
	"strings"
	"time"

	"professores-api/internal/model"
	"professores-api/pkg/apierror"
)

type ProfessorStore interface {
	List(ctx context.Context) ([]model.Professor, error)
	FindByID(ctx context.Context, id int64) (model.Professor, error)
	Create(ctx context.Context, p model.Professor) (model.Professor, error)
	Update(ctx context.Context, p model.Professor) error
	Delete(ctx context.Context, id int64) error
}

type ProfessorService struct {
	professores ProfessorStore
}

func NewProfessorService(professores ProfessorStore) *ProfessorService {
	return &ProfessorService{professores: professores}
}

func (s *ProfessorService) List(ctx context.Context) ([]model.Professor, error) {
	return s.professores.List(ctx)
}

func (s *ProfessorService) Create(ctx context.Context, nome string, materia string) (model.Professor, error) {
	nome = strings.TrimSpace(nome)
	materia = strings.TrimSpace(materia)
	if nome == "" || materia == "" {
		return model.Professor{}, apierror.BadRequest("nome and materia are required")
	}

	return s.professores.Create(ctx, model.Professor{
		Nome:      nome,
		Materia:   materia,
		CreatedAt: time.Now().UTC(),
	})
}

// Update applies a partial update: empty fields keep their stored value.
func (s *ProfessorService) Update(ctx context.Context, id int64, nome string, materia string) (model.Professor, error) {
	professor, err := s.professores.FindByID(ctx, id)
	if err != nil {
		return model.Professor{}, err
	}

	if nome = strings.TrimSpace(nome); nome != "" {
		professor.Nome = nome
	}
	if materia = strings.TrimSpace(materia); materia != "" {
		professor.Materia = materia
	}
	professor.UpdatedAt = time.Now().UTC()

	if err := s.professores.Update(ctx, professor); err != nil {
		return model.Professor{}, err
	}
	return professor, nil
}

func (s *ProfessorService) Delete(ctx context.Context, id int64) error {
	return s.professores.Delete(ctx, id)
}
