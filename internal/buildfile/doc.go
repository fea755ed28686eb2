// Package buildfile loads the optional spvbuild.hcl file that configures a
// build pass: source and output directories, the output suffix and the
// compiler to run. Expressions in the file can read the process environment
// through the `env` variable, e.g.
//
//	compiler {
//	  path = format("%s/bin/glslc", env.VULKAN_SDK)
//	}
package buildfile
