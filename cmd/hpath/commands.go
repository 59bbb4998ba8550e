package hpath

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pranaysashank/hpath/internal/version"
	"github.com/pranaysashank/hpath/pkg/config"
	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/fsops"
	"github.com/pranaysashank/hpath/pkg/paths"
)

func newCopyCmd(cfg *config.Config) *cobra.Command {
	var (
		overwrite bool
		collect   bool
	)

	cmd := &cobra.Command{
		Use:   "cp SOURCE DESTINATION",
		Short: "Copy a file, directory tree or symlink",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			copyMode := cfg.DefaultCopyMode()
			if overwrite {
				copyMode = fsops.Overwrite
			}
			errMode := cfg.DefaultErrorMode()
			if collect {
				errMode = fsops.CollectFailures
			}
			if err := fsops.EasyCopy(src, dst, copyMode, errMode); err != nil {
				return describeRecursive(err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing destination entries")
	cmd.Flags().BoolVar(&collect, "collect", false, "Collect sub-operation failures instead of aborting on the first")
	return cmd
}

func newMoveCmd(cfg *config.Config) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "mv SOURCE DESTINATION",
		Short: "Move or rename a file, directory or symlink",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			copyMode := cfg.DefaultCopyMode()
			if overwrite {
				copyMode = fsops.Overwrite
			}
			return fsops.MoveFile(src, dst, copyMode)
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Displace an existing same-typed destination first")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm PATH...",
		Short: "Delete files, symlinks and directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				p, err := paths.Parse(arg)
				if err != nil {
					return err
				}
				if err := fsops.EasyDelete(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newMkdirCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "mkdir PATH",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.Parse(args[0])
			if err != nil {
				return err
			}
			bits, err := strconv.ParseUint(mode, 8, 32)
			if err != nil {
				return errors.Newf(errors.ErrInvalidInput, "invalid mode %q", mode)
			}
			return fsops.CreateDir(p, fs.FileMode(bits))
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "755", "Permission bits in octal")
	return cmd
}

func newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ln TARGET LINK",
		Short: "Create a symbolic link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := paths.Parse(args[1])
			if err != nil {
				return err
			}
			return fsops.CreateSymlink(link, args[0])
		},
	}
}

func newTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type PATH",
		Short: "Print the file type of a path without following symlinks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.Parse(args[0])
			if err != nil {
				return err
			}
			ft, err := fsops.GetFileType(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ft)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hpath %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

func parsePair(srcArg, dstArg string) (paths.Path, paths.Path, error) {
	src, err := paths.Parse(srcArg)
	if err != nil {
		return paths.Path{}, paths.Path{}, err
	}
	dst, err := paths.Parse(dstArg)
	if err != nil {
		return paths.Path{}, paths.Path{}, err
	}
	return src, dst, nil
}

// describeRecursive expands a collected aggregate failure into one line
// per sub-operation so the caller sees which pairs failed.
func describeRecursive(err error) error {
	var rec *fsops.RecursiveError
	if !stderrors.As(err, &rec) {
		return err
	}
	msg := fmt.Sprintf("%d sub-operations failed:", len(rec.Failures))
	for _, f := range rec.Failures {
		msg += fmt.Sprintf("\n  %s", f)
	}
	return fmt.Errorf("%s", msg)
}
