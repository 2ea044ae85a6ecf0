// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package defermsg represents human-readable text as translatable values.

A [Message] carries its source message id (msgid), its translation
domain, and an immutable snapshot of substitution parameters. Formatting
happens immediately; picking a locale and rendering a string happens
later, so one constructed message can be rendered in any number of
locales without re-running the call site:

	m, err := defermsg.M("Disk %(name)s is %(pct)d%% full").
		Format(map[string]any{"name": "vda", "pct": 93})
	...
	english, err := m.Translate("en_US")
	german, err := m.Translate("de_DE")

# Quick start

Use the original English text as the msgid; do not invent keys. Build a
[Factory] for your domain, or call [Setup] once at startup to install a
process-default factory from the loaded configuration:

	f := defermsg.NewFactory("myapp",
		defermsg.WithResolver(catalog.NewResolver(
			catalog.WithSources(catalog.NewGettextSource("./locale")),
		)))
	m := f.M("Are you sure you want to quit?")

The package-level constructors [M], [T], [Info], [Warning], [Error], and
[Critical] delegate to the default factory. The leveled constructors
bind messages to per-severity domains ("myapp-log-error" and friends) so
each severity keeps its own catalog.

# Formatting

Substitution uses %-style placeholders: %(name)s for named parameters
and %s for positional ones. [Message.Format] snapshots its argument and
trims named mappings to the keys the msgid references. Substitution
always restarts from the msgid's translation, so repeated formatting
never compounds already-substituted text.

# Missing translations

A missing catalog or msgid is never an error: the msgid itself is the
rendering. When strict mode is enabled in the configuration, missing
lookups are logged once per locale and msgid and the fallback text is
visibly wrapped as "⟦...⟧".

# Rendering

[Translate] translates any value: Messages render for the target locale,
slices and string-keyed maps are translated element-wise, everything
else passes through unchanged. [Message.Render] writes the
context-locale translation and satisfies templ.Component, so messages
can be dropped straight into templ templates.

Catalog loading and locale enumeration live in the catalog subpackage;
log emission helpers live in loghook.
*/
package defermsg
