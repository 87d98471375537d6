// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

// BuildTree converts the flat list of lines into a forest, using indentation.
//
// The stack holds the chain of open nodes: stack[k] is the open node at
// indentation k, so the length of the stack is the indentation a line needs
// to be a child of the deepest open node. Nodes are attached to their parent
// when they are closed, which happens in source order.
//
// Blank lines do not create nodes. They set the bottom spacing flag of the
// deepest open node.
func (p *Parser) BuildTree(doc *LineDocument) (*TreeDocument, error) {
	var nodes []*RawNode
	var stack []*RawNode

	popToParent := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, top)
		} else {
			nodes = append(nodes, top)
		}
	}

	for _, line := range doc.Lines {

		if len(line.Terms) == 0 {
			if len(stack) > 0 {
				stack[len(stack)-1].BottomSpacing = true
			}
			continue
		}

		if line.Indent > p.maxNesting {
			return nil, nodeError(p.fileName, line.Number, ErrTooDeep,
				"indentation %d is above the limit of %d", line.Indent, p.maxNesting)
		}

		node := &RawNode{Number: line.Number, Contents: line.Terms}

		if len(stack) == 0 {
			if line.Indent != 0 {
				return nil, nodeError(p.fileName, line.Number, ErrOrphanIndent, "")
			}
			stack = append(stack, node)
			continue
		}

		// Close the nodes deeper than the new line
		for line.Indent+1 < len(stack) {
			popToParent()
		}

		switch {
		case line.Indent+1 == len(stack):
			// A sibling of the deepest open node
			popToParent()
			stack = append(stack, node)

		case line.Indent == len(stack):
			// A child of the deepest open node
			stack = append(stack, node)

		default:
			return nil, nodeError(p.fileName, line.Number, ErrIndentLeap,
				"current indent %d, expected at most %d", line.Indent, len(stack))
		}
	}

	for len(stack) > 0 {
		popToParent()
	}

	p.log.Debugw("tree built", "file", p.fileName, "lines", len(doc.Lines), "topLevelNodes", len(nodes))

	return &TreeDocument{
		Header:  doc.Header,
		Options: doc.Options,
		Nodes:   nodes,
	}, nil
}
