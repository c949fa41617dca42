// Package filesystem finds TypeScript sources in a project tree.
//
// Walks skip dependency and build output directories (node_modules, dist,
// coverage and the like) and hidden entries unless asked otherwise:
//
//	files, err := filesystem.SourceFiles("src", filesystem.SourceOptions{})
//	for _, f := range files {
//	    fmt.Println(f)
//	}
//
// Expand accepts a mix of files and directories, as given on a command line.
package filesystem
