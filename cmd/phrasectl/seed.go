package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/phraseflash/internal/db"
	"github.com/vytor/phraseflash/internal/repository/sqlite"
	"github.com/vytor/phraseflash/internal/services"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create users, languages and phrases",
}

var addUserCmd = &cobra.Command{
	Use:   "user USERNAME",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tz, _ := cmd.Flags().GetString("timezone")
		includeExisting, _ := cmd.Flags().GetBool("include-existing")
		return withDB(func(database *db.DB) error {
			svc := services.NewUserService(sqlite.NewUserRepository(database.DB), sqlite.NewLanguageRepository(database.DB))
			user, err := svc.CreateUser(cmd.Context(), args[0], tz, includeExisting)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d: %s (%s)\n", user.ID, user.Username, user.Timezone)
			return nil
		})
	},
}

var addLanguageCmd = &cobra.Command{
	Use:   "language CODE [NAME]",
	Short: "Create a language",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 2 {
			name = args[1]
		}
		return withDB(func(database *db.DB) error {
			svc := services.NewUserService(sqlite.NewUserRepository(database.DB), sqlite.NewLanguageRepository(database.DB))
			lang, err := svc.CreateLanguage(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "language %d: %s\n", lang.ID, lang.Code)
			return nil
		})
	},
}

var addPhraseCmd = &cobra.Command{
	Use:   "phrase ORIGINAL [TRANSLATION]",
	Short: "Create a phrase for a user",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		languageID, _ := cmd.Flags().GetInt64("language")
		translation := ""
		if len(args) == 2 {
			translation = args[1]
		}
		return withDB(func(database *db.DB) error {
			svc := services.NewPhraseService(
				sqlite.NewLanguageRepository(database.DB),
				sqlite.NewPhraseRepository(database.DB),
				sqlite.NewPracticeLogRepository(database.DB),
			)
			phrase, err := svc.CreatePhrase(cmd.Context(), userID, languageID, args[0], translation)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "phrase %d: %s\n", phrase.ID, phrase.Original)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addUserCmd, addLanguageCmd, addPhraseCmd)

	addUserCmd.Flags().String("timezone", "UTC", "IANA timezone of the user")
	addUserCmd.Flags().Bool("include-existing", false, "practice phrases created before the first session")

	addPhraseCmd.Flags().Int64("user", 0, "owner user id")
	addPhraseCmd.Flags().Int64("language", 0, "language id")
	_ = addPhraseCmd.MarkFlagRequired("user")
	_ = addPhraseCmd.MarkFlagRequired("language")
}

func withDB(fn func(*db.DB) error) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}
