package cmd

import (
	"context"
	"fmt"

	"github.com/campusq/forum/internal/compress"
	"github.com/campusq/forum/internal/config"
	"github.com/campusq/forum/internal/service"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var courseID string
	var query string
	var types []string
	var limit int
	var minRelevance int

	command := &cobra.Command{
		Use:     "search",
		Short:   "search course materials by keyword relevance",
		Example: "forum search -c <course-id> -q 'recursion base case'",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			materials := service.NewMaterialService(db, compress.NewGZip())

			results, err := materials.Search(context.Background(), courseID, query, service.SearchOptions{
				Types:        types,
				Limit:        limit,
				MinRelevance: minRelevance,
			})
			if err != nil {
				fmt.Println("search failed:", err)
				return
			}

			for _, r := range results {
				fmt.Printf("%3d%%  %s  [%s]\n      %s\n", r.RelevanceScore, r.Material.Title, r.Material.Type, r.Snippet)
			}
			if len(results) == 0 {
				fmt.Println("no matching materials")
			}
		},
	}

	command.Flags().StringVarP(&courseID, "course-id", "c", "", "course id")
	command.Flags().StringVarP(&query, "query", "q", "", "search query")
	command.Flags().StringSliceVarP(&types, "types", "t", nil, "material types to include")
	command.Flags().IntVarP(&limit, "limit", "l", 0, "max results")
	command.Flags().IntVarP(&minRelevance, "min-relevance", "m", 0, "minimum relevance score")
	_ = command.MarkFlagRequired("course-id")
	_ = command.MarkFlagRequired("query")

	return command
}
