// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package html

// Placeholders in the page template.
// Header entries of the document are available as {#key}.
const (
	HeadPlaceholder    = "HERE_GOES_THE_HEAD"
	ContentPlaceholder = "HERE_GOES_THE_CONTENT"
	TitlePlaceholder   = "{#title}"
)

// DefaultTemplate is the page used when no template is configured.
const DefaultTemplate = `<!DOCTYPE html>
<html>
<head>
HERE_GOES_THE_HEAD
</head>
<body>
<main>
HERE_GOES_THE_CONTENT
</main>
</body>
</html>
`

const headerMetaTags = `<meta name="viewport" content="width=device-width,initial-scale=1,maximum-scale=1,user-scalable=no"/>
<meta http-equiv="X-UA-Compatible" content="IE=edge,chrome=1"/>
<meta name="HandheldFriendly" content="true"/>
<meta charset="UTF-8"/>`

// katexInitJS renders every element with class katex-inline or katex-display.
const katexInitJS = `
document.addEventListener("DOMContentLoaded", function() {
    const macros = {};
    const opts = {
        throwOnError: false,
        macros: macros,
        globalGroup: true,
    };

    for (let e of document.querySelectorAll(".katex-inline, .katex-display")) {
        const text = e.textContent;
        const opts_selected = e.classList.contains("katex-display")
            ? {displayMode: true, fleqn: true, ...opts}
            : opts;

        katex.render(text, e, opts_selected);
    }
});
`

// DefaultStyle is the stylesheet embedded in every page.
const DefaultStyle = `
:root {
    --col-fg-alt: #555555;

    --col-bg: #FFFFFF;
    --col-bg-alt: #EEEEEE;

    --col-emphasis: #DF5273;

    --col-href: #2277DD;
    --col-href-hover: #66CCEE;

    --font-sans-serif: -apple-system, BlinkMacSystemFont, avenir next, avenir, segoe ui, helvetica neue, Adwaita Sans, Cantarell, Ubuntu, roboto, noto, helvetica, arial, sans-serif;
    --font-monospace: Menlo, Consolas, Monaco, Adwaita Mono, Liberation Mono, Lucida Console, monospace;
}

html {
    background-color: var(--col-bg);
}

body {
    font-family: var(--font-sans-serif);
    font-size: 1.08em;
}

p {
    margin-top: 0em;
    margin-bottom: 0.1em;
}

b {
    color: var(--col-emphasis);
}

a {
    color: var(--col-href);
    font-weight: bold;
    text-decoration-line: underline;
}

a:hover {
    color: var(--col-href-hover);
}

a.acr-href {
    color: var(--col-emphasis);
    font-weight: normal;
}

span.acr-tag {
    color: var(--col-emphasis);
    font-size: 1.0em;
}

div.acr-spacing {
    margin-top: 0em;
    margin-bottom: 0.85em;
}

summary:hover {
    background-color: var(--col-bg-alt);
}

.acr-inline-code, pre {
    white-space: pre-wrap;
    overflow-wrap: break-word;
    word-wrap: break-word;

    font-family: var(--font-monospace);
    border: 1px solid #DDD;
    color: var(--col-fg-alt);
    max-width: 100%;
}

.acr-inline-code {
    background-color: rgba(27, 31, 35, 0.05);
    border-radius: 2px;
    font-size: 85%;
    margin: 0;
    padding: 0.2em 0.4em 0.1em 0.4em;
}

pre {
    padding: 0.5em;
    page-break-inside: avoid;
    background-color: var(--col-bg-alt);
    border-radius: 3px;
}

table.acr-table {
    border-collapse: collapse;
    margin: 0.25em 0em;
}

table.acr-table td, table.acr-table th {
    border: 1px solid #DDD;
    padding: 0.2em 0.6em;
}

figure.acr-figure {
    margin: 0.5em 0em;
}

.katex-display {
    margin: 0.5em 0em;
}
.katex-display.fleqn>.katex {
    padding-left: 0em;
}

@media (prefers-color-scheme: dark) {
    svg g {
        fill: #FFF;
    }
}
`
