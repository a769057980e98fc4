package cmd

import (
	"github.com/TFMV/filebuddy/internal/command"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <content_pattern>",
	Short: "Search file contents, and optionally names, for a regex",
	Long: `Search prints every line matching <content_pattern> with its line number.
With -p only files whose names match are scanned, and matching names are
printed as well.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(command.KindSearch, args)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List files and directories, optionally filtered by -p",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(command.KindList, args)
	},
}

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Print the recursive size of files and directories",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(command.KindSize, args)
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <new_name>",
	Short: "Rename entries matching -p in place",
	Long: `Rename builds each new name from <new_name>, replacing $(n) with capture
group n of the -p match ($(0) is the whole match).`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(command.KindRename, args)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete files and directory trees matching -p",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(command.KindDelete, args)
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <output_dir|output_file>",
	Short: "Copy entries matching -p to a destination",
	Long: `Copy copies each matching entry to the destination. A trailing "/" keeps
the file name; a directory copied to an existing directory lands inside it.
$(n) in the destination is replaced with capture group n of the -p match.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(command.KindCopy, args)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <output_dir|output_file>",
	Short: "Move entries matching -p to a destination",
	Long: `Move follows the destination rules of copy but moves each entry,
falling back to copy and delete across filesystems.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(command.KindMove, args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, listCmd, sizeCmd, renameCmd, deleteCmd, copyCmd, moveCmd)
}
