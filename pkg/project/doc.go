// Package project detects what kind of TypeScript project a directory holds.
//
//	info, err := project.Detect(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info.Name, info.Framework, info.TestFramework)
//
// Detection reads package.json for the package name and its dependencies,
// and checks for tsconfig.json and codegen.yaml.
package project
