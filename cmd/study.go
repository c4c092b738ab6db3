package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/scriptura/studyref/internal/server"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "study commands",
}

func init() {
	rootCmd.AddCommand(studyCmd)
	studyCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	studyCmd.AddCommand(createStudyCmd())
	studyCmd.AddCommand(listStudiesCmd())
}

func createStudyCmd() *cobra.Command {
	var title string
	var book string
	var chapter int
	var tags string

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a study",
		Example: "studyref study create -t 'Creation' -b Genesis -n 1 --tags creation,beginnings",
		Run: func(cmd *cobra.Command, args []string) {
			if title == "" {
				color.Red("missing: --title")
				return
			}

			var tagNames []string
			if tags != "" {
				tagNames = strings.Split(tags, ",")
			}

			study, err := apiClient().CreateStudy(context.Background(), server.CreateStudyRequest{
				Title:         title,
				BookName:      book,
				ChapterNumber: chapter,
				Tags:          tagNames,
			})
			if err != nil {
				color.Red("error: %v", err)
				return
			}

			color.Green("created study %s", study.ID)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "study title")
	command.Flags().StringVarP(&book, "book", "b", "", "book name")
	command.Flags().IntVarP(&chapter, "chapter", "n", 0, "chapter number")
	command.Flags().StringVar(&tags, "tags", "", "comma separated tag names")

	return command
}

func listStudiesCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list studies",
		Run: func(cmd *cobra.Command, args []string) {
			studies, err := apiClient().ListStudies(context.Background())
			if err != nil {
				color.Red("error: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Title", "Book", "Chapter", "Tags"})
			for _, study := range studies {
				table.Append([]string{
					study.ID,
					study.Title,
					study.BookName,
					strconv.Itoa(study.ChapterNumber),
					strings.Join(study.Tags, ","),
				})
			}
			table.Render()
		},
	}

	return command
}
