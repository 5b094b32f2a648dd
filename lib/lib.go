/*package lib contains the command-line layer shared by fakegas's modes:
parsing arguments, layering configuration sources, and expanding the list of
input files. The heavy lifting is done by lib/'s subpackages.
*/
package lib

// Version is the version of the software.
const Version = "0.1.0"
