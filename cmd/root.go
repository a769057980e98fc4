package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fb <command> [options]",
	Short: "FileBuddy: search, list, size, rename, delete, copy and move files",
	Long: `fb walks a directory tree and acts on the files and directories whose
names match a regular expression. Search also matches file contents.

Examples:
  fb search "TODO" -p "\.go$" -r
  fb list -p "^report" -d ./data
  fb size -r -a
  fb rename '$(1).md' -p '^(.*)\.txt$'
  fb delete -p '\.tmp$' -r
  fb copy backup/ -p '\.csv$'
  fb move 'archive/$(1)' -p '^(\d{4})-.*\.log$'`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.filebuddy.yaml)")
	flags.StringP("pattern", "p", "", "Regex matched against file and directory names")
	flags.StringP("directory", "d", ".", "Directory to operate on")
	flags.BoolP("recursive", "r", false, "Descend into subdirectories")
	flags.StringP("output", "o", "", "Write result lines to this file instead of the terminal")
	flags.BoolP("all", "a", false, "Include hidden files and directories")
	flags.BoolP("verbose", "v", false, "Print info and error lines")
	flags.StringSliceP("exclude", "x", []string{}, "Skip names matching this glob (repeatable)")
	flags.String("log-level", "error", "Diagnostic log level (debug|info|warn|error)")

	// Bind flags to viper
	viper.BindPFlag("pattern", flags.Lookup("pattern"))
	viper.BindPFlag("directory", flags.Lookup("directory"))
	viper.BindPFlag("recursive", flags.Lookup("recursive"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("all", flags.Lookup("all"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("exclude", flags.Lookup("exclude"))
	viper.BindPFlag("log-level", flags.Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in home directory with name ".filebuddy" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".filebuddy")
	}

	// FB_RECURSIVE=true, FB_LOG_LEVEL=debug, ...
	viper.SetEnvPrefix("fb")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; results go to stdout so nothing is printed here.
	_ = viper.ReadInConfig()
}
