package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "reference commands",
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	linkCmd.AddCommand(addLinkCmd())
	linkCmd.AddCommand(addExternalLinkCmd())
	linkCmd.AddCommand(listLinksCmd())
	linkCmd.AddCommand(removeLinkCmd())
	linkCmd.AddCommand(reorderLinkCmd())
}

func addLinkCmd() *cobra.Command {
	var studyID string
	var targetID string

	command := &cobra.Command{
		Use:     "add",
		Short:   "link a study to another study",
		Example: "studyref link add -s <study-id> -d <target-study-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if studyID == "" || targetID == "" {
				color.Red("missing: --study and --target")
				return
			}

			ok, err := apiClient().AddReference(context.Background(), studyID, targetID)
			if err != nil {
				color.Red("error: %v", err)
				return
			}
			if !ok {
				color.Red("reference not created")
				return
			}

			color.Green("reference created")
		},
	}

	command.Flags().StringVarP(&studyID, "study", "s", "", "source study id")
	command.Flags().StringVarP(&targetID, "target", "d", "", "target study id")

	return command
}

func addExternalLinkCmd() *cobra.Command {
	var studyID string
	var url string

	command := &cobra.Command{
		Use:     "add-external",
		Short:   "attach an external url to a study",
		Example: "studyref link add-external -s <study-id> -u https://example.com/article",
		Run: func(cmd *cobra.Command, args []string) {
			if studyID == "" || url == "" {
				color.Red("missing: --study and --url")
				return
			}

			ok, err := apiClient().AddExternalLink(context.Background(), studyID, url)
			if err != nil {
				color.Red("error: %v", err)
				return
			}
			if !ok {
				color.Red("reference not created")
				return
			}

			color.Green("external link created")
		},
	}

	command.Flags().StringVarP(&studyID, "study", "s", "", "source study id")
	command.Flags().StringVarP(&url, "url", "u", "", "external url")

	return command
}

func listLinksCmd() *cobra.Command {
	var studyID string

	command := &cobra.Command{
		Use:   "list",
		Short: "list the references of a study",
		Run: func(cmd *cobra.Command, args []string) {
			if studyID == "" {
				color.Red("missing: --study")
				return
			}

			cards, err := apiClient().ListReferences(context.Background(), studyID)
			if err != nil {
				color.Red("error: %v", err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Category", "Title", "Target", "Order"})
			for _, card := range cards {
				title := card.Title
				if card.Hostname != "" {
					title = card.Hostname
				}
				table.Append([]string{
					card.ID,
					string(card.Category),
					title,
					card.TargetStudyID,
					strconv.Itoa(card.DisplayOrder),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&studyID, "study", "s", "", "source study id")

	return command
}

func removeLinkCmd() *cobra.Command {
	var referenceID string

	command := &cobra.Command{
		Use:   "remove",
		Short: "remove a reference and its mirror",
		Run: func(cmd *cobra.Command, args []string) {
			if referenceID == "" {
				color.Red("missing: --reference")
				return
			}

			ok, err := apiClient().DeleteReference(context.Background(), referenceID)
			if err != nil {
				color.Red("error: %v", err)
				return
			}
			if !ok {
				color.Red("reference not found")
				return
			}

			color.Green("reference removed")
		},
	}

	command.Flags().StringVarP(&referenceID, "reference", "r", "", "reference id")

	return command
}

func reorderLinkCmd() *cobra.Command {
	var referenceID string
	var direction string

	command := &cobra.Command{
		Use:   "reorder",
		Short: "move a reference up or down",
		Run: func(cmd *cobra.Command, args []string) {
			if referenceID == "" {
				color.Red("missing: --reference")
				return
			}

			ok, err := apiClient().ReorderReference(context.Background(), referenceID, direction)
			if err != nil {
				color.Red("error: %v", err)
				return
			}
			if !ok {
				color.Red("reference not moved")
				return
			}

			color.Green("reference moved %s", direction)
		},
	}

	command.Flags().StringVarP(&referenceID, "reference", "r", "", "reference id")
	command.Flags().StringVar(&direction, "direction", "up", "up or down")

	return command
}
