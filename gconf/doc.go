/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps at most one configuration object, stored under a key
derived from the extension name. Configuration is loaded from the genesis
file, from the "conf" section:

	{
	  "conf": {
	    "rental": {...}
	  }
	}

Any object that can validate and serialize itself can be stored.
*/
package gconf
