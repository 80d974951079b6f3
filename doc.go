/*
Sentinel is a mutation testing engine for C/C++ projects.

Given a source tree, a build command and a test command, it generates
syntactic variants of the program ("mutants"), rebuilds and retests each
one, and classifies each mutant by whether the existing test suite
detects the change. The output is a per-file, per-directory mutation
coverage report identifying where the test suite is blind.

Usage

To populate a list of mutants from a compilation database:

	$ sentinel populate --build-dir build --scope all mutants.txt

To run the full pipeline end to end:

	$ sentinel run --build-command "make -C build" \
	    --test-command "ctest --test-dir build" \
	    --test-result-dir build/test-results

Configuration

Sentinel uses Viper (https://github.com/spf13/viper) for configuration.
Options can be passed as command flags, environment variables, or a
configuration file, each taking precedence over the next. Environment
variables use the form:

	SENTINEL_<COMMAND NAME>_<FLAG NAME>

The configuration file is named .sentinel.yaml and is searched for in
/etc/sentinel, $XDG_CONFIG_HOME/sentinel, $HOME/.sentinel, the module
root, and the current directory, in that order.
*/
package sentinel
