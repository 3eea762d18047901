package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/Huanyu_Go/internal/bootstrap"
	"github.com/osse101/Huanyu_Go/internal/config"
	"github.com/osse101/Huanyu_Go/internal/database/postgres"
)

func newSeedCmd() *cobra.Command {
	var itemsPath, recipesPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Sync items and recipes from the JSON config into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			PrintHeader("Seeding reference data")
			pool, err := openPool(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer pool.Close()

			cfg := &config.Config{ItemsConfigPath: itemsPath, RecipesConfigPath: recipesPath}
			result, err := bootstrap.SyncCatalog(cmd.Context(), postgres.NewStore(pool, 0), cfg)
			if err != nil {
				return err
			}
			PrintSuccess("Items: %d inserted, %d updated, %d unchanged; recipes: %d",
				result.ItemsInserted, result.ItemsUpdated, result.ItemsSkipped, result.RecipesUpserted)
			return nil
		},
	}
	cmd.Flags().StringVar(&itemsPath, "items", getEnv("ITEMS_CONFIG_PATH", config.ConfigPathItems), "items config file")
	cmd.Flags().StringVar(&recipesPath, "recipes", getEnv("RECIPES_CONFIG_PATH", config.ConfigPathRecipes), "recipes config file")
	return cmd
}
