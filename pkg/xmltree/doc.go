/*
Package xmltree loads TIN XML documents into a mutable, queryable tree.

The rest of the module only depends on the Document and Element interfaces,
which expose the capability set the pipelines need: find elements by tag name,
read text and attributes, replace text and serialize. The default
implementation is backed by github.com/beevik/etree.

# Modes

  - Permissive: used by the Scaler. Unknown entities, unquoted attributes and
    unclosed tags are tolerated as far as the parser allows.
  - Strict: used by the Extractor. The input is validated as well-formed XML
    before the tree is built.
*/
package xmltree
