package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/utils"
)

const (
	itemColumns         = `id, name, category, grade, effect, price, stock, is_system, attack_bonus`
	itemColumnsPrefixed = `i.id, i.name, i.category, i.grade, i.effect, i.price, i.stock, i.is_system, i.attack_bonus`

	recipeColumns = `id, kind, name, grade, material_1_id, material_1_qty,
		COALESCE(material_2_id, 0), COALESCE(material_2_qty, 0),
		cost, output_item_id, output_qty, success_rate::float8, created_at`
)

func itemDest(i *domain.Item) []any {
	return []any{&i.ID, &i.Name, &i.Category, &i.Grade, &i.Effect, &i.Price, &i.Stock, &i.IsSystem, &i.AttackBonus}
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	if err := row.Scan(itemDest(&item)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf(ErrMsgFailedToQueryItems, err)
	}
	return &item, nil
}

func (c *conn) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	return scanItem(c.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, itemID))
}

func (c *conn) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	return scanItem(c.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE name_key = $1`, utils.NormalizeName(name)))
}

func (c *conn) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := c.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryItems, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		var item domain.Item
		err := row.Scan(itemDest(&item)...)
		return item, err
	})
}

// UpsertItem matches on the normalized name and fills item.ID
func (c *conn) UpsertItem(ctx context.Context, item *domain.Item) error {
	key := utils.NormalizeName(item.Name)
	if key == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	err := c.q.QueryRow(ctx, `
		INSERT INTO items (name, name_key, category, grade, effect, price, stock, is_system, attack_bonus)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name_key) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			grade = EXCLUDED.grade,
			effect = EXCLUDED.effect,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			is_system = EXCLUDED.is_system,
			attack_bonus = EXCLUDED.attack_bonus
		RETURNING id
	`, item.Name, key, item.Category, item.Grade, item.Effect, item.Price, item.Stock, item.IsSystem, item.AttackBonus,
	).Scan(&item.ID)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeCheckViolation {
			return fmt.Errorf("%w: item %q", domain.ErrInvalidAmount, item.Name)
		}
		return fmt.Errorf(ErrMsgFailedToWriteItem, err)
	}
	return nil
}

func recipeDest(r *domain.Recipe, m1, m2 *domain.Material) []any {
	return []any{&r.ID, &r.Kind, &r.Name, &r.Grade, &m1.ItemID, &m1.Quantity, &m2.ItemID, &m2.Quantity,
		&r.Cost, &r.OutputItemID, &r.OutputQty, &r.SuccessRate, &r.CreatedAt}
}

func finishRecipe(r *domain.Recipe, m1, m2 domain.Material) {
	r.Materials = []domain.Material{m1}
	if m2.ItemID != 0 {
		r.Materials = append(r.Materials, m2)
	}
}

func (c *conn) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	var (
		r      domain.Recipe
		m1, m2 domain.Material
	)
	err := c.q.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, recipeID).
		Scan(recipeDest(&r, &m1, &m2)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryRecipes, err)
	}
	finishRecipe(&r, m1, m2)
	return &r, nil
}

// ListRecipes returns every recipe when kind is empty
func (c *conn) ListRecipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error) {
	rows, err := c.q.Query(ctx, `
		SELECT `+recipeColumns+` FROM recipes
		WHERE $1 = '' OR kind = $1
		ORDER BY id
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryRecipes, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Recipe, error) {
		var (
			r      domain.Recipe
			m1, m2 domain.Material
		)
		if err := row.Scan(recipeDest(&r, &m1, &m2)...); err != nil {
			return r, err
		}
		finishRecipe(&r, m1, m2)
		return r, nil
	})
}

// UpsertRecipe matches on kind and normalized name and fills recipe.ID
func (c *conn) UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	m1 := recipe.Materials[0]
	var m2ID, m2Qty *int
	if len(recipe.Materials) > 1 {
		m2ID, m2Qty = &recipe.Materials[1].ItemID, &recipe.Materials[1].Quantity
	}
	err := c.q.QueryRow(ctx, `
		INSERT INTO recipes (kind, name, name_key, grade, material_1_id, material_1_qty,
			material_2_id, material_2_qty, cost, output_item_id, output_qty, success_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (kind, name_key) DO UPDATE SET
			name = EXCLUDED.name,
			grade = EXCLUDED.grade,
			material_1_id = EXCLUDED.material_1_id,
			material_1_qty = EXCLUDED.material_1_qty,
			material_2_id = EXCLUDED.material_2_id,
			material_2_qty = EXCLUDED.material_2_qty,
			cost = EXCLUDED.cost,
			output_item_id = EXCLUDED.output_item_id,
			output_qty = EXCLUDED.output_qty,
			success_rate = EXCLUDED.success_rate
		RETURNING id, created_at
	`, string(recipe.Kind), recipe.Name, utils.NormalizeName(recipe.Name), recipe.Grade,
		m1.ItemID, m1.Quantity, m2ID, m2Qty, recipe.Cost, recipe.OutputItemID, recipe.OutputQty, recipe.SuccessRate,
	).Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return fmt.Errorf("recipe %q: %w", recipe.Name, domain.ErrItemNotFound)
		}
		return fmt.Errorf(ErrMsgFailedToWriteRecipe, err)
	}
	return nil
}
