/*
Package cfgkit is a toolbox for analysing context-free grammars and for
parsing input against them.

cfgkit offers three parsing strategies for the same grammar model:
predictive LL(1) parsing, table-driven LR parsing (SLR(1), LR(1) and
LALR(1)-style state merging) and chart-based Earley parsing. Package
structure is as follows:

■ lr: Package lr holds the grammar model, grammar transformations,
FIRST/FOLLOW analysis, LR items and the construction of LR tables.
Sub-packages implement the parse drivers (ll1, shiftreduce, earley),
derivation trees and action execution (derivation), and lexers (scanner).

■ workbench: Package workbench bundles a grammar with its analysis and
offers parse entry points for every strategy.

■ grammarfile: Package grammarfile reads and writes collections of
grammars and token definitions.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfgkit
