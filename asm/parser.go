// This file is part of synacor-challenge - https://github.com/maskimko/synacor-challenge
//
// Copyright 2026 The synacor-challenge Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Source is parsed line by line. A line is an optional label definition
// followed by an optional statement and a newline.

type program struct {
	Lines []*line `parser:"@@*"`
}

type line struct {
	Pos   lexer.Position
	Label string     `parser:"@Label?"`
	Stmt  *statement `parser:"@@? EOL"`
}

type statement struct {
	Pos  lexer.Position
	Op   string     `parser:"@(Ident | Directive)"`
	Args []*operand `parser:"@@*"`
}

type operand struct {
	Pos    lexer.Position
	Number *string `parser:"  @Number"`
	Char   *string `parser:"| @Char"`
	String *string `parser:"| @String"`
	Ident  *string `parser:"| @Ident"`
}

var asmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `;[^\n]*`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Label", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*:`},
	{Name: "Directive", Pattern: `\.[a-z]+`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},
	{Name: "Char", Pattern: `'(\\.[^']*|[^'\\])'`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})

var parser = participle.MustBuild[program](
	participle.Lexer(asmLexer),
	participle.Elide("Whitespace", "Comment"),
)
