// Package file is the byte sink behind file-based log output.
//
// A File is either a path that is opened and closed explicitly, or an
// external stream such as os.Stdout that is usable immediately:
//
//	f := file.New("log", "2026-10-19.log")
//	if err := f.Open(file.Append); err != nil {
//		return err
//	}
//	defer f.Close()
//
// Opening for Write or Append creates missing parent directories.
package file
