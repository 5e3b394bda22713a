package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"fontcolor/archive"
	"fontcolor/config"
	"fontcolor/convert"
	"fontcolor/editor"
	"fontcolor/fontcolor"
	"fontcolor/state"
)

func runConvert(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	// empty destination means STDOUT for a single file and working
	// directory otherwise, decided later
	dst := cmd.Args().Get(1)
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := parseOutputFormat(cmd.String("model"))
	if err != nil {
		return fmt.Errorf("--model: %w", err)
	}

	env.NoDirs, env.Overwrite, env.Charset = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.String("charset")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	var names encoding.Encoding
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		if names, err = archive.NameEncoding(cp); err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			names = nil
		} else {
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", cp))
		}
	}

	ed, err := editor.New(env.Log, fontcolor.NewEditing(&env.Cfg.FontColor, env.Log))
	if err != nil {
		return fmt.Errorf("unable to prepare editor: %w", err)
	}

	c := &converter{
		env:    env,
		log:    log,
		ed:     ed,
		format: format,
		walker: archive.NewWalker(names, env.Log),
		out:    cmd.Root().Writer,
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return c.process(ctx, src, dst)
}

type converter struct {
	env    *state.LocalEnv
	log    *zap.Logger
	ed     *editor.Editor
	format outputFormat
	walker *archive.Walker
	out    io.Writer
}

// process determines the input type (directory, archive, or single file)
// and processes accordingly.
func (c *converter) process(ctx context.Context, src, dst string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if dst, err = defaultDir(dst); err != nil {
				return err
			}
			return c.processDir(ctx, head, dst)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := archive.IsArchive(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			if dst, err = defaultDir(dst); err != nil {
				return err
			}
			// we need to look inside to see if path makes sense
			prefix := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := c.processArchive(ctx, head, prefix, "", dst); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		if !archive.IsDocument(head) {
			c.log.Warn("File extension is not recognized, processing as HTML anyway", zap.String("file", head))
		}
		return c.processFile(ctx, head, dst)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func defaultDir(dst string) (string, error) {
	if len(dst) > 0 {
		return dst, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get working directory: %w", err)
	}
	return dir, nil
}

// processFile handles single document. Destination could be a file, an
// existing directory or empty for STDOUT.
func (c *converter) processFile(ctx context.Context, path, dst string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open source: %w", err)
	}
	defer file.Close()

	outputName := dst
	if len(dst) > 0 {
		if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
			outputName = filepath.Join(dst, c.outputFileName(path))
		}
	}
	return c.document(ctx, file, filepath.Base(path), outputName)
}

// processDir walks directory tree finding documents and archives and
// processes them.
func (c *converter) processDir(ctx context.Context, dir, dst string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			c.log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			c.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		if archive.IsDocument(path) {
			count++
			file, err := os.Open(path)
			if err != nil {
				c.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
				return nil
			}
			defer file.Close()

			if err := c.document(ctx, file, rel, c.outputPath(rel, dst)); err != nil {
				c.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		isArchive, err := archive.IsArchive(path)
		if err != nil {
			c.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !isArchive {
			c.log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}
		count++
		if err := c.processArchive(ctx, path, "", filepath.Dir(rel), dst); err != nil {
			c.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processArchive processes all documents inside archive under "prefix".
// Results are placed under "pathOut" relative to destination.
func (c *converter) processArchive(ctx context.Context, path, prefix, pathOut, dst string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			c.log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return c.walker.Walk(ctx, path, prefix, func(doc archive.Document) error {
		count++

		r, err := doc.Open()
		if err != nil {
			c.log.Error("Unable to process file in archive", zap.String("archive", doc.Archive), zap.String("file", doc.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		src := filepath.Join(pathOut, filepath.FromSlash(doc.Name))
		if err := c.document(ctx, r, src, c.outputPath(src, dst)); err != nil {
			c.log.Error("Unable to process file in archive", zap.String("archive", doc.Archive), zap.String("file", doc.Name), zap.Error(err))
		}
		return nil
	})
}

// outputPath returns result location for "src" relative to processed
// directory or archive, keeping input structure unless asked otherwise.
func (c *converter) outputPath(src, dst string) string {
	outDir := dst
	if !c.env.NoDirs {
		outDir = filepath.Join(dst, filepath.Dir(src))
	}
	return filepath.Join(outDir, c.outputFileName(src))
}

func (c *converter) outputFileName(src string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return config.CleanFileName(base) + c.format.ext()
}

// document converts single HTML document. "src" is the source path relative
// to processed directory or archive, "outputName" is result file or empty
// for STDOUT.
func (c *converter) document(ctx context.Context, r io.Reader, src, outputName string) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	log := c.log.With(zap.String("from", src))
	log.Debug("Conversion starting")
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	in, err := c.reader(r)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("unable to read source (%s): %w", src, err)
	}
	c.env.Rpt.StoreData("input/"+filepath.ToSlash(src), data)

	if err := c.ed.SetData(string(data)); err != nil {
		return fmt.Errorf("unable to parse source (%s): %w", src, err)
	}
	out, err := c.render()
	if err != nil {
		return fmt.Errorf("unable to produce output: %w", err)
	}

	if len(outputName) == 0 {
		if _, err := c.out.Write(out); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		return nil
	}

	if _, err := os.Stat(outputName); err == nil {
		if !c.env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, out, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	c.env.Rpt.Store("result/"+filepath.ToSlash(src)+c.format.ext(), outputName)
	return nil
}

func (c *converter) reader(r io.Reader) (io.Reader, error) {
	if len(c.env.Charset) > 0 {
		return convert.NewReaderLabel(c.env.Charset, r)
	}
	return convert.NewReader(r, "text/html")
}

func (c *converter) render() ([]byte, error) {
	switch c.format {
	case formatText:
		return []byte(c.ed.ModelData() + "\n"), nil
	case formatXML:
		var buf bytes.Buffer
		if err := c.ed.Model().WriteXML(&buf); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case formatTree:
		return []byte(c.ed.Model().Dump()), nil
	default:
		s, err := c.ed.GetData()
		if err != nil {
			return nil, err
		}
		return []byte(s + "\n"), nil
	}
}
