package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"professores-api/internal/model"
)

type ProfessorRepository struct {
	pool *pgxpool.Pool
}

func NewProfessorRepository(pool *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{pool: pool}
}

func (r *ProfessorRepository) List(ctx context.Context) ([]model.Professor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nome, materia, created_at, updated_at FROM professores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list professores: %w", err)
	}
	defer rows.Close()

	professores := make([]model.Professor, 0)
	for rows.Next() {
		var p model.Professor
		if err := rows.Scan(&p.ID, &p.Nome, &p.Materia, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan professor: %w", err)
		}
		professores = append(professores, p)
	}
	return professores, rows.Err()
}

func (r *ProfessorRepository) FindByID(ctx context.Context, id int64) (model.Professor, error) {
	var p model.Professor
	err := r.pool.QueryRow(ctx,
		`SELECT id, nome, materia, created_at, updated_at FROM professores WHERE id = $1`, id).
		Scan(&p.ID, &p.Nome, &p.Materia, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Professor{}, model.ErrProfessorNotFound
	}
	if err != nil {
		return model.Professor{}, fmt.Errorf("find professor by id: %w", err)
	}
	return p, nil
}

func (r *ProfessorRepository) Create(ctx context.Context, p model.Professor) (model.Professor, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO professores (nome, materia, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)
		 RETURNING id, created_at, updated_at`,
		p.Nome, p.Materia, p.CreatedAt).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Professor{}, fmt.Errorf("create professor: %w", err)
	}
	return p, nil
}

func (r *ProfessorRepository) Update(ctx context.Context, p model.Professor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE professores SET nome = $2, materia = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Nome, p.Materia, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfessorNotFound
	}
	return nil
}

func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM professores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfessorNotFound
	}
	return nil
}
