// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.StdErr, so every report run logs which build produced it.
package compileinfoprint

import "github.com/carbocation/roga/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
